package model

// LabIncharge maps a location to the member responsible for it.
type LabIncharge struct {
	LocationID int64  `gorm:"column:locationid;primaryKey" json:"location_id"`
	Location   string `gorm:"size:255;not null" json:"location"`
	MemberID   int64  `gorm:"column:memberid;not null" json:"member_id"`
	Status     string `gorm:"size:50;not null" json:"status"`
}

// TableName preserves the legacy table name.
func (LabIncharge) TableName() string { return "lab_incharge" }
