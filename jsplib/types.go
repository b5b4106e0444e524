package jsplib

import "errors"

var (
	// ErrFormat indicates malformed JSPLIB text.
	ErrFormat = errors.New("jsplib: malformed instance")

	// ErrShape indicates a shop whose jobs do not all visit every machine
	// exactly once, or that has no job at all.
	ErrShape = errors.New("jsplib: inconsistent shop shape")
)

// Op is one operation: a machine index and a processing time.
type Op struct {
	Machine  int
	Duration int
}

// Shop is a job-shop instance. Jobs[j] lists the operations of job j in
// processing order.
type Shop struct {
	Jobs [][]Op
}

// NumJobs returns the number of jobs.
func (s *Shop) NumJobs() int { return len(s.Jobs) }

// NumMachines returns the number of machines, taken from the first job.
func (s *Shop) NumMachines() int {
	if len(s.Jobs) == 0 {
		return 0
	}

	return len(s.Jobs[0])
}

// Bounds holds published bounds of an instance without a known optimum.
type Bounds struct {
	Upper int `json:"upper"`
	Lower int `json:"lower"`
}

// Instance is one entry of the JSPLIB index file.
type Instance struct {
	Name     string  `json:"name"`
	Jobs     int     `json:"jobs"`
	Machines int     `json:"machines"`
	Optimum  *int    `json:"optimum,omitempty"`
	Bounds   *Bounds `json:"bounds,omitempty"`
	Path     string  `json:"path"`
}
