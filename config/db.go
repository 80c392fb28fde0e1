package config

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"bluewave-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "bluewave_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func amenitiesJSON(items ...string) datatypes.JSON {
	b, err := json.Marshal(items)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(b)
}

// SeedDatabase seeds the room catalog and a default admin account when the
// tables are empty.
func SeedDatabase() {
	var adminCount int64
	DB.Model(&models.User{}).Where("email = ?", "admin@bluewaveresort.com").Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.User{
				FullName: "Resort Admin",
				Email:    "admin@bluewaveresort.com",
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount > 0 {
		log.Printf("Rooms already seeded (%d)", roomCount)
		return
	}

	rooms := []models.Room{
		{
			Name:        "Large Villa",
			Price:       12000,
			Capacity:    12,
			Stock:       5,
			TotalStock:  5,
			Status:      models.RoomStatusAvailable,
			Description: "Ideal for families or groups - up to 8-12 pax",
			Image:       "res/Large Villa.png",
			Amenities:   amenitiesJSON("Air Conditioning", "Kitchen", "Living Area", "Private Veranda", "Pool Access"),
		},
		{
			Name:        "Medium Villa",
			Price:       7000,
			Capacity:    6,
			Stock:       5,
			TotalStock:  5,
			Status:      models.RoomStatusAvailable,
			Description: "For small families or couples - up to 4-6 pax",
			Image:       "res/Medium Villa.png",
			Amenities:   amenitiesJSON("Air Conditioning", "2 Bedrooms", "Small Kitchen", "Living Space"),
		},
		{
			Name:        "Cottage",
			Price:       2500,
			Capacity:    10,
			Stock:       5,
			TotalStock:  5,
			Status:      models.RoomStatusAvailable,
			Description: "For day-tour guests - 6-10 pax per cottage",
			Image:       "res/Cottages.png",
			Amenities:   amenitiesJSON("Open-air", "Table & Seating", "Pool Access", "Beach Access"),
		},
		{
			Name:        "Camping Area",
			Price:       800,
			Capacity:    20,
			Stock:       5,
			TotalStock:  5,
			Status:      models.RoomStatusAvailable,
			Description: "Bonfire space for open-area events",
			Image:       "res/Camping.png",
			Amenities:   amenitiesJSON("Bonfire", "Common Bathroom", "Open Area", "Activities Space"),
		},
	}
	if err := DB.Create(&rooms).Error; err != nil {
		log.Printf("warning: failed to seed rooms: %v", err)
		return
	}
	log.Println("Sample rooms seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Reservation{},
		&models.ContactMessage{},
		&models.ContactReply{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}
