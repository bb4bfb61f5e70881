package model

import "time"

// IssueType is the fixed complaint category enum.
type IssueType int

const (
	IssueHardware   IssueType = 1
	IssueProcess    IssueType = 2
	IssueElectrical IssueType = 3
)

// Complaint is the terminal artifact of a completed dialogue. It is created
// exactly once and never mutated here; downstream workflows own status changes.
type Complaint struct {
	ComplaintID  int64     `gorm:"primaryKey;autoIncrement" json:"complaint_id"`
	Reference    string    `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	MemberID     *int64    `gorm:"column:member_id" json:"member_id"`
	MachineID    int64     `gorm:"not null" json:"machine_id"`
	LocationName string    `gorm:"size:255" json:"location_name"`
	LocationID   *int64    `json:"location_id"`
	Description  string    `gorm:"column:complaint_description;type:text;not null" json:"description"`
	Type         IssueType `gorm:"not null" json:"type"`
	Status       string    `gorm:"size:50;default:Open" json:"status"`
	CreatedAt    time.Time `gorm:"column:time_of_complaint" json:"time_of_complaint"`
}

// TableName preserves the legacy table name.
func (Complaint) TableName() string { return "complaint" }
