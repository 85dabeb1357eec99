package employee

type CreateEmployeeRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=admin employee"`
}

type EmployeeResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	LeaveBalances BalanceMap `json:"leaveBalances"`
}

// HistoryApplicationResponse mirrors the leave application wire shape, so
// history entries round-trip with the same field names as /api/leaves.
type HistoryApplicationResponse struct {
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
