package student

type CreateStudentRequest struct {
	FullName   string `json:"fullName" binding:"required,min=2,max=120"`
	Email      string `json:"email" binding:"omitempty,email"`
	Grade      string `json:"grade" binding:"required"`
	ClassName  string `json:"className" binding:"omitempty,max=60"`
	EnrolledAt string `json:"enrolledAt" binding:"omitempty,datetime=2006-01-02"`
}

type UpdateStudentRequest struct {
	FullName  string `json:"fullName" binding:"required,min=2,max=120"`
	Email     string `json:"email" binding:"omitempty,email"`
	Grade     string `json:"grade" binding:"required"`
	ClassName string `json:"className" binding:"omitempty,max=60"`
}

type StudentResponse struct {
	ID            string `json:"id"`
	SchoolID      string `json:"schoolId"`
	FullName      string `json:"fullName"`
	Email         string `json:"email,omitempty"`
	Grade         string `json:"grade"`
	GradeCategory string `json:"gradeCategory"`
	ClassName     string `json:"className,omitempty"`
	EnrolledAt    string `json:"enrolledAt"`
}
