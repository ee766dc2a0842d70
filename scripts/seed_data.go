//go:build ignore

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/naufal/go-antar/internal/cache"
	"github.com/naufal/go-antar/internal/config"
	"github.com/naufal/go-antar/internal/database"
	"github.com/naufal/go-antar/internal/models"
	"github.com/naufal/go-antar/internal/repository"
)

// Jakarta coordinates
const (
	baseLat = -6.2088
	baseLng = 106.8456
)

var (
	firstNames = []string{"Budi", "Siti", "Agus", "Dewi", "Eko", "Rina", "Joko", "Ayu", "Hendra", "Lestari",
		"Andi", "Fitri", "Rizky", "Wulan", "Dedi", "Putri", "Bambang", "Indah", "Yusuf", "Maya"}
	lastNames = []string{"Santoso", "Wijaya", "Pratama", "Saputra", "Hidayat", "Kusuma", "Setiawan", "Rahayu", "Nugroho", "Permata"}
)

func randomName() string {
	return fmt.Sprintf("%s %s", firstNames[rand.Intn(len(firstNames))], lastNames[rand.Intn(len(lastNames))])
}

func main() {
	rand.Seed(time.Now().UnixNano())

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.DatabaseURL, cfg.DBMaxConnections, cfg.DBMaxIdleConnections)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer db.Close()

	redis, err := database.NewRedis(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redis.Close()

	ctx := context.Background()

	userRepo := repository.NewUserRepository(db.DB)
	driverRepo := repository.NewDriverProfileRepository(db.DB)
	orderRepo := repository.NewOrderRepository(db.DB)
	subRepo := repository.NewSubscriptionRepository(db.DB)
	driverCache := cache.NewDriverLocationCache(redis.Client)

	// Every seeded account shares one password.
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	// Create passengers
	log.Println("Creating 30 passengers...")
	passengerIDs := make([]string, 0)
	for i := 0; i < 30; i++ {
		user := &models.User{
			Email:        fmt.Sprintf("passenger%02d@example.com", i),
			PasswordHash: string(hash),
			FullName:     randomName(),
			Phone:        fmt.Sprintf("0812%08d", rand.Intn(100000000)),
			Role:         models.RolePassenger,
		}
		if err := userRepo.Create(ctx, user, nil); err != nil {
			log.Printf("Failed to create passenger: %v", err)
			continue
		}
		passengerIDs = append(passengerIDs, user.ID)
	}
	log.Printf("Created %d passengers", len(passengerIDs))

	// Create drivers
	vehicleTypes := []string{"motorcycle", "car"}
	log.Println("Creating 50 drivers...")
	driverIDs := make([]string, 0)
	for i := 0; i < 50; i++ {
		user := &models.User{
			Email:        fmt.Sprintf("driver%02d@example.com", i),
			PasswordHash: string(hash),
			FullName:     randomName(),
			Phone:        fmt.Sprintf("0813%08d", rand.Intn(100000000)),
			Role:         models.RoleDriver,
		}
		profile := &models.DriverProfile{
			LicenseNumber: fmt.Sprintf("SIM-%010d", rand.Intn(1000000000)),
			VehicleType:   vehicleTypes[rand.Intn(len(vehicleTypes))],
			VehiclePlate:  fmt.Sprintf("B %04d %c%c%c", rand.Intn(10000), 'A'+rand.Intn(26), 'A'+rand.Intn(26), 'A'+rand.Intn(26)),
			IsAvailable:   false,
		}
		if err := userRepo.Create(ctx, user, profile); err != nil {
			log.Printf("Failed to create driver: %v", err)
			continue
		}
		driverIDs = append(driverIDs, user.ID)

		// Most drivers get an active subscription; a few are left lapsed so
		// eligibility filtering has something to exclude.
		if rand.Float64() > 0.2 {
			now := time.Now()
			sub := &models.DriverSubscription{
				DriverID:         user.ID,
				SubscriptionType: models.SubscriptionTypeMonthly,
				Amount:           100000,
				StartsAt:         now,
				ExpiresAt:        now.Add(models.SubscriptionDuration),
				PaymentStatus:    models.SubscriptionPaymentPending,
			}
			if err := subRepo.Create(ctx, sub); err != nil {
				log.Printf("Failed to create subscription: %v", err)
			}
		}

		// Put half the drivers online somewhere around the city center.
		if rand.Float64() > 0.5 {
			lat := baseLat + (rand.Float64()-0.5)*0.1 // +/- 0.05 degrees (~5km)
			lng := baseLng + (rand.Float64()-0.5)*0.1

			if err := driverRepo.UpdateLocation(ctx, user.ID, lat, lng, true); err != nil {
				log.Printf("Failed to update driver location: %v", err)
				continue
			}
			driverCache.UpdateLocation(ctx, user.ID, lat, lng)
		}
	}
	log.Printf("Created %d drivers", len(driverIDs))

	// Create a handful of pending orders
	log.Println("Creating 10 pending orders...")
	orderIDs := make([]string, 0)
	for i := 0; i < 10; i++ {
		order := &models.Order{
			PassengerID:        passengerIDs[rand.Intn(len(passengerIDs))],
			PickupLat:          baseLat + (rand.Float64()-0.5)*0.1,
			PickupLng:          baseLng + (rand.Float64()-0.5)*0.1,
			PickupAddress:      fmt.Sprintf("Jl. Sudirman No. %d", rand.Intn(200)+1),
			DestinationLat:     baseLat + (rand.Float64()-0.5)*0.2,
			DestinationLng:     baseLng + (rand.Float64()-0.5)*0.2,
			DestinationAddress: fmt.Sprintf("Jl. Gatot Subroto No. %d", rand.Intn(200)+1),
			EstimatedFare:      float64(10000 + rand.Intn(40)*1000),
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			log.Printf("Failed to create order: %v", err)
			continue
		}
		orderIDs = append(orderIDs, order.ID)
	}
	log.Printf("Created %d orders", len(orderIDs))

	// Summary
	log.Println("\n=== Seed Data Summary ===")
	log.Printf("Passengers created: %d", len(passengerIDs))
	log.Printf("Drivers created: %d", len(driverIDs))
	log.Printf("Pending orders created: %d", len(orderIDs))
	log.Println("\nSample Passenger ID:", passengerIDs[0])
	log.Println("Sample Driver ID:", driverIDs[0])
	log.Println("Sample Order ID:", orderIDs[0])
	log.Println("\nAll accounts use password: password123")
}
