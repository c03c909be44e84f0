package repository

import "time"

// CollabListFilter 查询合作列表的过滤条件
type CollabListFilter struct {
	Page        int
	PageSize    int
	BrandUserID uint
	Status      string
	Type        string
	Platform    string
	Search      string
	OnlyPublic  bool
}

// ApplicationListFilter 查询申请列表的过滤条件
type ApplicationListFilter struct {
	Page             int
	PageSize         int
	CollabID         uint
	InfluencerUserID uint
	Status           string
}

// CommissionListFilter 查询佣金流水的过滤条件
type CommissionListFilter struct {
	Page             int
	PageSize         int
	InfluencerUserID uint
	BrandUserID      uint
	Source           string
	CreatedFrom      *time.Time
	CreatedTo        *time.Time
}

// DisputeListFilter 查询争议列表的过滤条件
type DisputeListFilter struct {
	Page     int
	PageSize int
	Status   string
}

// CancellationListFilter 查询取消请求列表的过滤条件
type CancellationListFilter struct {
	Page     int
	PageSize int
	Status   string
}

// EscrowListFilter 查询托管列表的过滤条件
type EscrowListFilter struct {
	Page     int
	PageSize int
	Status   string
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	UserType string
	Status   string
	Search   string
}
