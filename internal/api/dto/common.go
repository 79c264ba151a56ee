package dto

// Response is the envelope every HTTP reply uses.
type Response struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// PageQuery standard pagination parameters.
type PageQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
}

func (q *PageQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}
