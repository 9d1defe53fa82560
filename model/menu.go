package model

// MenuItem và DiningTable do luồng CRUD quản lý (ngoài phạm vi subsystem này),
// ở đây chỉ đọc và seed để đơn hàng có dữ liệu tham chiếu.
type MenuItem struct {
	DTO
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"` // VND
	Category    string `json:"category"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`
}

type DiningTable struct {
	DTO
	Code     string `gorm:"unique;size:20" json:"code"` // ví dụ: T01
	Seats    int    `json:"seats"`
	IsActive bool   `gorm:"default:true" json:"isActive"`
}
