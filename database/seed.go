package database

import (
	"log"
	"restaurant_order/model"

	"gorm.io/gorm"
)

// SeedData tạo dữ liệu mẫu cho bàn và thực đơn nếu DB còn trống
func SeedData(db *gorm.DB) {
	var count int64
	db.Model(&model.DiningTable{}).Count(&count)
	if count > 0 {
		return
	}

	tables := []model.DiningTable{
		{Code: "T01", Seats: 2, IsActive: true},
		{Code: "T02", Seats: 4, IsActive: true},
		{Code: "T03", Seats: 4, IsActive: true},
		{Code: "T04", Seats: 6, IsActive: true},
		{Code: "T05", Seats: 8, IsActive: true},
	}
	if err := db.Create(&tables).Error; err != nil {
		log.Printf("Lỗi seed bàn: %v", err)
	}

	items := []model.MenuItem{
		{Name: "Phở bò tái", Price: 65000, Category: "Món chính", IsAvailable: true},
		{Name: "Bún chả Hà Nội", Price: 60000, Category: "Món chính", IsAvailable: true},
		{Name: "Cơm gà xối mỡ", Price: 55000, Category: "Món chính", IsAvailable: true},
		{Name: "Gỏi cuốn tôm thịt", Price: 45000, Category: "Khai vị", IsAvailable: true},
		{Name: "Chả giò hải sản", Price: 50000, Category: "Khai vị", IsAvailable: true},
		{Name: "Trà đá", Price: 5000, Category: "Đồ uống", IsAvailable: true},
		{Name: "Cà phê sữa đá", Price: 25000, Category: "Đồ uống", IsAvailable: true},
		{Name: "Chè ba màu", Price: 30000, Category: "Tráng miệng", IsAvailable: true},
	}
	if err := db.Create(&items).Error; err != nil {
		log.Printf("Lỗi seed thực đơn: %v", err)
	}

	log.Println("Seed dữ liệu bàn và thực đơn hoàn tất")
}
