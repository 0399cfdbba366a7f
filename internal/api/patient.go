package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

// TherapyFramework enumerates the therapy frameworks a patient can be
// created under.
type TherapyFramework string

const (
	FrameworkCBT TherapyFramework = "cognitive behavioral therapy"
	FrameworkDBT TherapyFramework = "dialectical behavior therapy"
	FrameworkACT TherapyFramework = "acceptance and commitment therapy"
)

// Frameworks lists the supported frameworks in display order.
var Frameworks = []TherapyFramework{FrameworkCBT, FrameworkDBT, FrameworkACT}

// Short returns the framework's common abbreviation.
func (f TherapyFramework) Short() string {
	switch f {
	case FrameworkCBT:
		return "CBT"
	case FrameworkDBT:
		return "DBT"
	case FrameworkACT:
		return "ACT"
	}
	return string(f)
}

// CreatePatient registers a new patient under the user.
func (c *Client) CreatePatient(ctx context.Context, userID, name string, framework TherapyFramework) error {
	form := url.Values{
		"user_id":      {userID},
		"patient_name": {name},
		"framework":    {string(framework)},
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/create_patient", nil, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	_, err = c.doRaw(req, "create patient")
	return err
}

// DeletePatient removes a patient and all of their sessions.
func (c *Client) DeletePatient(ctx context.Context, userID, patientID string) error {
	q := url.Values{"user_id": {userID}, "patient_id": {patientID}}
	req, err := c.newRequest(ctx, http.MethodDelete, "/delete_patient", q, nil)
	if err != nil {
		return err
	}
	_, err = c.doRaw(req, "delete patient")
	return err
}

// DeleteSession removes one session from a patient's directory.
func (c *Client) DeleteSession(ctx context.Context, userID, patientID, sessionID string) error {
	q := url.Values{
		"user_id":    {userID},
		"patient_id": {patientID},
		"session_id": {sessionID},
	}
	req, err := c.newRequest(ctx, http.MethodDelete, "/delete_session", q, nil)
	if err != nil {
		return err
	}
	_, err = c.doRaw(req, "delete session")
	return err
}
