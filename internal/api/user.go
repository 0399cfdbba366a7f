package api

import (
	"context"
	"net/http"
	"net/url"
	"sort"
)

// Session is one recorded therapy session in a patient's directory.
type Session struct {
	Type     string `json:"type,omitempty"`
	Datetime string `json:"datetime,omitempty"`
}

// Patient is one patient record in a user's directory.
type Patient struct {
	PatientID string             `json:"patient_id"`
	Name      string             `json:"name"`
	Framework string             `json:"framework,omitempty"`
	Items     map[string]Session `json:"items"`
}

// User is the backend's user document: account details plus the patient
// directory.
type User struct {
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	UserID       string             `json:"user_id"`
	Subscription string             `json:"user_subscription"`
	Patients     map[string]Patient `json:"patient_dir"`
}

// PatientIDs returns the patient ids sorted by patient name for stable
// display order.
func (u *User) PatientIDs() []string {
	ids := make([]string, 0, len(u.Patients))
	for id := range u.Patients {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := u.Patients[ids[i]], u.Patients[ids[j]]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return ids[i] < ids[j]
	})
	return ids
}

// SessionIDs returns the patient's session ids sorted newest first by
// session datetime.
func (p Patient) SessionIDs() []string {
	ids := make([]string, 0, len(p.Items))
	for id := range p.Items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := p.Items[ids[i]].Datetime, p.Items[ids[j]].Datetime
		if a != b {
			return a > b
		}
		return ids[i] < ids[j]
	})
	return ids
}

// GetUser fetches the user document.
func (c *Client) GetUser(ctx context.Context, userID string) (*User, error) {
	q := url.Values{"user_id": {userID}}
	req, err := c.newRequest(ctx, http.MethodGet, "/get_user", q, nil)
	if err != nil {
		return nil, err
	}
	var user User
	if err := c.doJSON(req, "get user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes the user account and all of its data.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	q := url.Values{"user_id": {userID}}
	req, err := c.newRequest(ctx, http.MethodDelete, "/delete_user", q, nil)
	if err != nil {
		return err
	}
	_, err = c.doRaw(req, "delete user")
	return err
}
