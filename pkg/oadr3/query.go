package oadr3

import (
	"net/url"
	"strconv"
)

// Int returns a pointer to v, for use with the optional Skip and Limit fields.
func Int(v int) *int {
	return &v
}

// Query is implemented by every collection search.
type Query interface {
	ToValues() url.Values
	Paging() SearchParams
}

// Paging returns the paging part of a search.
func (p SearchParams) Paging() SearchParams {
	return p
}

func (p SearchParams) apply(values url.Values) {
	if p.Skip != nil {
		values.Set("skip", strconv.Itoa(*p.Skip))
	}

	if p.Limit != nil {
		values.Set("limit", strconv.Itoa(*p.Limit))
	}
}

// ProgramSearch filters GET /programs.
type ProgramSearch struct {
	SearchParams

	// Targets are sent as repeated "targets" keys.
	Targets []string
}

// ToValues converts the search to URL query values.
func (s *ProgramSearch) ToValues() url.Values {
	values := url.Values{}
	for _, target := range s.Targets {
		values.Add("targets", target)
	}

	s.apply(values)

	return values
}

// EventSearch filters GET /events.
type EventSearch struct {
	SearchParams

	ProgramID string
}

// ToValues converts the search to URL query values.
func (s *EventSearch) ToValues() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "programId", s.ProgramID)
	s.apply(values)

	return values
}

// ReportSearch filters GET /reports.
type ReportSearch struct {
	SearchParams

	ProgramID  string
	ClientName string
}

// ToValues converts the search to URL query values.
func (s *ReportSearch) ToValues() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "programId", s.ProgramID)
	setIfNotEmpty(values, "clientName", s.ClientName)
	s.apply(values)

	return values
}

// VenSearch filters GET /vens.
type VenSearch struct {
	SearchParams

	VenName string
}

// ToValues converts the search to URL query values.
func (s *VenSearch) ToValues() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "venName", s.VenName)
	s.apply(values)

	return values
}

// VenResourceSearch filters GET /vens/{venId}/resources.
type VenResourceSearch struct {
	SearchParams

	ResourceName string
}

// ToValues converts the search to URL query values.
func (s *VenResourceSearch) ToValues() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "resourceName", s.ResourceName)
	s.apply(values)

	return values
}

// SubscriptionSearch filters GET /subscriptions.
type SubscriptionSearch struct {
	SearchParams

	ProgramID  string
	ClientName string
	// Objects are sent as repeated "objects" keys.
	Objects []string
}

// ToValues converts the search to URL query values.
func (s *SubscriptionSearch) ToValues() url.Values {
	values := url.Values{}
	setIfNotEmpty(values, "programId", s.ProgramID)
	setIfNotEmpty(values, "clientName", s.ClientName)

	for _, object := range s.Objects {
		values.Add("objects", object)
	}

	s.apply(values)

	return values
}

func setIfNotEmpty(values url.Values, key, value string) {
	if value != "" {
		values.Set(key, value)
	}
}
