package request

type RequestCodeRequest struct {
	FullName     string `json:"full_name" binding:"required"`
	MobileNumber string `json:"mobile_number" binding:"required"`
}

type VerifyCodeRequest struct {
	Code string `json:"code" binding:"required,len=6"`
}
