package dto

type CreateVoterDTO struct {
	FullName string `json:"fullName" validate:"required,max=100,name_spacial_char"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,password"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type VerifyOTPDTO struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,number"`
}

type ResendOTPDTO struct {
	Email string `json:"email" validate:"required,email"`
}
