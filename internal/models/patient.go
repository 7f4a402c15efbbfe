package models

import (
	"fmt"
	"strings"
)

type Patient struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	RecordNumber  string `json:"record_number"`
	MobilePhone   string `json:"mobile_phone"`
	LandlinePhone string `json:"landline_phone,omitempty"`
	Age           *int   `json:"age,omitempty"`
}

// Validate checks the fields the clinic requires before a patient can be
// registered. Landline and age stay optional.
func (p *Patient) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("patient name cannot be empty")
	}
	if strings.TrimSpace(p.RecordNumber) == "" {
		return fmt.Errorf("record number cannot be empty")
	}
	if strings.TrimSpace(p.MobilePhone) == "" {
		return fmt.Errorf("mobile phone cannot be empty")
	}
	return nil
}
