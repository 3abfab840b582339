// Package entity contains the core business objects of the project.
package entity

// Role represents the type of account a user registered as.
type Role string

const (
	// RoleJobSeeker indicates an account that browses postings.
	RoleJobSeeker Role = "jobseeker"
	// RoleEmployer indicates an account allowed to publish postings.
	RoleEmployer Role = "employer"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleJobSeeker, RoleEmployer:
		return true
	default:
		return false
	}
}

// CanPostJobs reports whether the role may create job postings.
func (r Role) CanPostJobs() bool {
	return r == RoleEmployer
}
