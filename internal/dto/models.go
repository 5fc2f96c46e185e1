package dto

// Department — a scheduling unit; every token, member and segment belongs
// to exactly one department.
type Department struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Operations"` // unique
}

// TeamMember — a person on the grid. ExternalID is the manually assigned
// id used on exports; it is unique within a department, not globally.
type TeamMember struct {
	ID             int64  `json:"id" example:"7"`
	DepartmentID   int64  `json:"department_id" example:"1"`
	ExternalID     string `json:"team_member_id" example:"1024"`
	DisplayName    string `json:"team_member" example:"Bahadir Coz"`
	DepartmentName string `json:"department_name,omitempty" example:"Operations"`
}

// ShiftSegment — one work assignment for one member on one date. Shift and
// overtime bounds are canonical "YYYY-MM-DD HH:MM" strings; nil means the
// bound is absent (all-day / leave entries).
type ShiftSegment struct {
	ID            int64   `json:"id" example:"42"`
	DepartmentID  int64   `json:"department_id" example:"1"` // denormalized from the member
	TeamMemberID  int64   `json:"team_member_id" example:"7"`
	Date          string  `json:"date" example:"2024-03-01"`
	WorkType      string  `json:"work_type" example:"Office"`
	FoodPayment   string  `json:"food_payment" example:"YES"`
	ShiftStart    *string `json:"shift_start,omitempty" example:"2024-03-01 09:00"`
	ShiftEnd      *string `json:"shift_end,omitempty" example:"2024-03-01 18:00"`
	OvertimeStart *string `json:"overtime_start,omitempty" example:"2024-03-01 18:00"`
	OvertimeEnd   *string `json:"overtime_end,omitempty" example:"2024-03-01 21:00"`
	CreatedAt     string  `json:"created_at,omitempty"`
	UpdatedAt     string  `json:"updated_at,omitempty"`
}

// ScheduleEntry — joined read-model row for the grid and exports: a segment
// together with the owning member's external id and display name.
type ScheduleEntry struct {
	ID            int64   `json:"id"`
	DepartmentID  int64   `json:"department_id"`
	Date          string  `json:"date"`
	ExternalID    string  `json:"team_member_id"`
	MemberName    string  `json:"team_member"`
	WorkType      string  `json:"work_type"`
	FoodPayment   string  `json:"food_payment"`
	ShiftStart    *string `json:"shift_start,omitempty"`
	ShiftEnd      *string `json:"shift_end,omitempty"`
	OvertimeStart *string `json:"overtime_start,omitempty"`
	OvertimeEnd   *string `json:"overtime_end,omitempty"`
}

// AccessLink — a capability token bound to one department and one role.
// Generated once, never rotated.
type AccessLink struct {
	ID           int64   `json:"id"`
	Token        string  `json:"token"`
	DepartmentID int64   `json:"department_id"`
	Role         string  `json:"role" example:"admin"` // admin | viewer
	Label        *string `json:"label,omitempty"`
	CreatedAt    string  `json:"created_at"`
}
