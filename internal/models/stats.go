package models

// DashboardStats holds the headline counters of the admin dashboard.
type DashboardStats struct {
	TotalBlogs      int64 `json:"totalBlogs"`
	TotalUsers      int64 `json:"totalUsers"`
	TotalCategories int64 `json:"totalCategories"`
	TotalLikes      int64 `json:"totalLikes"`
}

type CategoryCount struct {
	Name  string `json:"name" bson:"name"`
	Count int64  `json:"count" bson:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type Dashboard struct {
	Stats         DashboardStats  `json:"stats"`
	CategoryData  []CategoryCount `json:"categoryData"`
	UserTrendData []MonthCount    `json:"userTrendData"`
}
