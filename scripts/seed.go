package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/servicehub/backend/internal/adapters/database"
	"github.com/servicehub/backend/internal/domain/entities"
	"github.com/servicehub/backend/internal/infrastructure/clients/postgres"
	"github.com/servicehub/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				bookings,
				users
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	db := goqu.New("postgres", pgClient.DB())

	// 1. Seed users
	now := time.Now()
	users := []entities.Identity{
		{ID: uuid.New().String(), Name: "Ada Obi", Email: "ada@example.com", Role: entities.RoleCustomer, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Chinedu Eze", Email: "chinedu@example.com", Role: entities.RoleCustomer, CreatedAt: now},
		{ID: uuid.New().String(), Name: "Tunde Balogun", Email: "tunde@example.com", Role: entities.RoleProvider, ServiceCategory: entities.CategoryPlumber, Phone: "+2348012345001", CreatedAt: now},
		{ID: uuid.New().String(), Name: "Ngozi Ike", Email: "ngozi@example.com", Role: entities.RoleProvider, ServiceCategory: entities.CategoryElectrician, Phone: "+2348012345002", CreatedAt: now},
		{ID: uuid.New().String(), Name: "Bisi Adeyemi", Email: "bisi@example.com", Role: entities.RoleProvider, ServiceCategory: entities.CategoryCleaner, Phone: "+2348012345003", CreatedAt: now},
		{ID: uuid.New().String(), Name: "Platform Admin", Email: "admin@example.com", Role: entities.RoleAdmin, CreatedAt: now},
	}

	for _, u := range users {
		var category interface{}
		if u.ServiceCategory != "" {
			category = string(u.ServiceCategory)
		}
		query, args, err := db.Insert("users").Rows(goqu.Record{
			"id":               u.ID,
			"name":             u.Name,
			"email":            u.Email,
			"role":             u.Role,
			"service_category": category,
			"phone":            u.Phone,
			"blocked":          false,
			"created_at":       u.CreatedAt,
		}).ToSQL()
		if err != nil {
			log.Fatalf("Failed to build user insert: %v", err)
		}
		if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
			log.Printf("Failed to create user %s: %v", u.Name, err)
		}
	}
	log.Printf("Seeded %d users", len(users))

	// 2. Seed bookings through the adapter
	bookingRepo := database.NewBookingAdapter(pgClient)

	plumberID := users[2].ID
	bookings := []*entities.Booking{
		{
			ID:              uuid.New().String(),
			CustomerID:      users[0].ID,
			ProviderID:      &plumberID,
			ServiceID:       "svc-pipe-repair",
			ServiceName:     "Pipe repair",
			ServiceCategory: entities.CategoryPlumber,
			Date:            now.AddDate(0, 0, 3).Format("2006-01-02"),
			Time:            "10:00",
			Location:        entities.Location{Address: "12 Allen Avenue, Ikeja"},
			Status:          entities.BookingStatusConfirmed,
			Price:           150,
			PaymentStatus:   entities.PaymentStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		{
			ID:              uuid.New().String(),
			CustomerID:      users[1].ID,
			ServiceID:       "svc-deep-clean",
			ServiceName:     "Deep cleaning",
			ServiceCategory: entities.CategoryCleaner,
			Date:            now.AddDate(0, 0, 5).Format("2006-01-02"),
			Time:            "09:00",
			Location:        entities.Location{Address: "3 Marina Road, Lagos Island"},
			Status:          entities.BookingStatusPending,
			Price:           200,
			PaymentStatus:   entities.PaymentStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
	}

	for _, b := range bookings {
		if err := bookingRepo.Create(ctx, b); err != nil {
			log.Printf("Failed to create booking %s: %v", b.ServiceName, err)
		}
	}
	log.Printf("Seeded %d bookings", len(bookings))

	log.Println("Seeding complete")
}
