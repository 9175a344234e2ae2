package domain

// Role is a static authority label
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Operation is a guarded action on students
type Operation string

const (
	OpListStudents  Operation = "students:list"
	OpCreateStudent Operation = "students:create"
	OpDeleteStudent Operation = "students:delete"
)

var grants = map[Role][]Operation{
	RoleAdmin: {OpListStudents, OpCreateStudent, OpDeleteStudent},
	RoleUser:  {OpListStudents},
}

// Allows reports whether the role grants op
func (r Role) Allows(op Operation) bool {
	for _, granted := range grants[r] {
		if granted == op {
			return true
		}
	}
	return false
}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	_, ok := grants[r]
	return ok
}
