package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=kursusku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal konek DB: %v", err)
	}
	DB = db
	log.Println("✅ DB connected.")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Printf("⚠️ Gagal ambil sql.DB: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
}

// WarmUpQueries menyentuh tabel-tabel panas supaya koneksi & plan cache siap
// sebelum traffic masuk.
func WarmUpQueries() {
	start := time.Now()
	queries := []string{
		"SELECT 1",
		"SELECT course_id FROM courses LIMIT 1",
		"SELECT progress_id FROM progress_records LIMIT 1",
		"SELECT test_attempt_id FROM test_attempts LIMIT 1",
	}
	for _, q := range queries {
		if err := DB.Exec(q).Error; err != nil {
			log.Printf("⚠️ Warm-up query gagal (%s): %v", q, err)
		}
	}
	log.Printf("🔥 Warm-up selesai dalam %s", time.Since(start))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
