package leave

type CreateLeaveRequest struct {
	EmployeeName  string `json:"employeeName" binding:"required"`
	EmployeeEmail string `json:"employeeEmail" binding:"required,email"`
	LeaveType     string `json:"leaveType" binding:"required"`
	FromDate      string `json:"fromDate" binding:"required"`
	ToDate        string `json:"toDate" binding:"required"`
	NumberOfDays  int    `json:"numberOfDays"`
	Reason        string `json:"reason"`
}

// UpdateLeaveRequest is a partial update: only fields present in the body
// are merged into the stored record.
type UpdateLeaveRequest struct {
	EmployeeName  *string `json:"employeeName"`
	EmployeeEmail *string `json:"employeeEmail" binding:"omitempty,email"`
	LeaveType     *string `json:"leaveType"`
	FromDate      *string `json:"fromDate"`
	ToDate        *string `json:"toDate"`
	NumberOfDays  *int    `json:"numberOfDays"`
	Reason        *string `json:"reason"`
	Status        *string `json:"status" binding:"omitempty,oneof=Pending Approved Rejected"`
}

type LeaveResponse struct {
	ID            string `json:"id"`
	EmployeeName  string `json:"employeeName"`
	EmployeeEmail string `json:"employeeEmail"`
	LeaveType     string `json:"leaveType"`
	FromDate      string `json:"fromDate"`
	ToDate        string `json:"toDate"`
	NumberOfDays  int    `json:"numberOfDays"`
	Reason        string `json:"reason"`
	Status        string `json:"status"`
	AppliedDate   string `json:"appliedDate"`
}
