package domain

import "fmt" // String formatting

// Student Model
type Student struct {
	ID   uint   `gorm:"primaryKey" json:"id"` // Surrogate key assigned by the database
	Name string `json:"name"`                 // Student name
	Roll string `json:"roll"`                 // Roll number, informal identifier
}

// TableName pins the table name used by the schema
func (Student) TableName() string {
	return "students"
}

// String renders the student for logs
func (s Student) String() string {
	return fmt.Sprintf("Student(id=%d, name=%s, roll=%s)", s.ID, s.Name, s.Roll)
}

// StudentForm is the payload of the creation form
type StudentForm struct {
	Name string `form:"name" json:"name"` // Student name
	Roll string `form:"roll" json:"roll"` // Roll number
}

// ToStudent maps the form onto a new, unsaved student
func (f StudentForm) ToStudent() Student {
	return Student{Name: f.Name, Roll: f.Roll}
}
