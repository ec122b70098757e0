package department

type TreeResponse struct {
	Departments []*TreeNode `json:"departments"`
}

type ChangeParentRequest struct {
	ParentID *int64 `json:"parent_id"`
}

type DeleteResult struct {
	Departments int   `json:"departments"`
	Employees   int64 `json:"employees"`
}
