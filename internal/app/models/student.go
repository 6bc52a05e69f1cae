package models

import "time"

// Student defines the enrollment record owned 1:1 by a student User
type Student struct {
	ID        int64         `json:"id" db:"id"`
	UserID    int64         `json:"userId" db:"user_id"`
	FirstName string        `json:"firstName" db:"first_name"`
	LastName  string        `json:"lastName" db:"last_name"`
	Email     string        `json:"email" db:"email"`
	StudentID string        `json:"studentId" db:"student_id"`
	CourseID  *int64        `json:"courseId,omitempty" db:"course_id"`
	YearLevel int           `json:"yearLevel" db:"year_level"`
	Status    StudentStatus `json:"status" db:"status"`
	Section   *string       `json:"section,omitempty" db:"section"`
	Avatar    *string       `json:"avatar,omitempty" db:"avatar"`

	Admission AdmissionRecord `json:"admission" db:"admission_record"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course *Course `json:"course,omitempty"`
	User   *User   `json:"user,omitempty"`
}

// AdmissionRecord carries the admission-form payload. Every field is optional
// free text with no invariant beyond "string or empty"; it is persisted as a
// single jsonb column.
type AdmissionRecord struct {
	BirthDate     string `json:"birthDate,omitempty"`
	BirthPlace    string `json:"birthPlace,omitempty"`
	Gender        string `json:"gender,omitempty"`
	Citizenship   string `json:"citizenship,omitempty"`
	CivilStatus   string `json:"civilStatus,omitempty"`
	Religion      string `json:"religion,omitempty"`
	Address       string `json:"address,omitempty"`
	City          string `json:"city,omitempty"`
	Province      string `json:"province,omitempty"`
	ZipCode       string `json:"zipCode,omitempty"`
	Phone         string `json:"phone,omitempty"`
	Disability    string `json:"disability,omitempty"`
	IndigenousGrp string `json:"indigenousGroup,omitempty"`

	FatherName       string `json:"fatherName,omitempty"`
	FatherOccupation string `json:"fatherOccupation,omitempty"`
	FatherPhone      string `json:"fatherPhone,omitempty"`
	MotherName       string `json:"motherName,omitempty"`
	MotherOccupation string `json:"motherOccupation,omitempty"`
	MotherPhone      string `json:"motherPhone,omitempty"`
	GuardianName     string `json:"guardianName,omitempty"`
	GuardianRelation string `json:"guardianRelation,omitempty"`
	GuardianPhone    string `json:"guardianPhone,omitempty"`
	FamilyIncome     string `json:"familyIncome,omitempty"`

	ElementarySchool    string `json:"elementarySchool,omitempty"`
	ElementaryYear      string `json:"elementaryYearGraduated,omitempty"`
	JuniorHighSchool    string `json:"juniorHighSchool,omitempty"`
	JuniorHighYear      string `json:"juniorHighYearGraduated,omitempty"`
	SeniorHighSchool    string `json:"seniorHighSchool,omitempty"`
	SeniorHighYear      string `json:"seniorHighYearGraduated,omitempty"`
	SeniorHighStrand    string `json:"seniorHighStrand,omitempty"`
	LastSchoolAttended  string `json:"lastSchoolAttended,omitempty"`
	LastSchoolYearLevel string `json:"lastSchoolYearLevel,omitempty"`
	GeneralAverage      string `json:"generalAverage,omitempty"`
}
