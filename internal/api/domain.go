package api

import "github.com/JaimeStill/triage/internal/complaints"

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Complaints complaints.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	return &Domain{
		Complaints: complaints.New(
			runtime.Database.Connection(),
			runtime.Enrichment,
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
