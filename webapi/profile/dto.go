package profile

// SubmitInput represents the multipart form fields of a registration
// submission. The aadhaarFile and profilePhoto parts are read separately.
type SubmitInput struct {
	FullName    string `form:"fullName" validate:"required"`
	FatherName  string `form:"fatherName" validate:"required"`
	DateOfBirth string `form:"dateOfBirth" validate:"required"`
	Age         int    `form:"age" validate:"required,gt=0,lt=150"`
	Gender      string `form:"gender" validate:"required,oneof=Male Female Other"`
	Address     string `form:"address" validate:"required"`
	Phone       string `form:"phone" validate:"required,min=10,max=15"`
}
