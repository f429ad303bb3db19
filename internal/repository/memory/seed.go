package memory

import (
	"context"
	"time"

	"rideshare/internal/domain"
)

// SeedDrivers populates the driver repository with a small fleet so the
// service is usable out of the box in development mode.
func SeedDrivers(ctx context.Context, repo *DriverRepository) error {
	now := time.Now()

	drivers := []*domain.Driver{
		{
			ID:     "driver_1",
			Name:   "John Smith",
			Phone:  "+1 (555) 123-4567",
			Email:  "john.smith@example.com",
			Rating: 4.8,
			Photo:  "https://ui-avatars.com/api/?name=John+Smith&background=0D8ABC&color=fff",
			Car: domain.Vehicle{
				Model: "Toyota Camry",
				Color: "Silver",
				Plate: "ABC 123",
			},
			Location:  domain.Coordinates{Latitude: 40.7431, Longitude: -73.9712},
			Available: true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:     "driver_2",
			Name:   "Sarah Johnson",
			Phone:  "+1 (555) 987-6543",
			Email:  "sarah.johnson@example.com",
			Rating: 4.9,
			Photo:  "https://ui-avatars.com/api/?name=Sarah+Johnson&background=F0812B&color=fff",
			Car: domain.Vehicle{
				Model: "Honda Accord",
				Color: "Black",
				Plate: "XYZ 789",
			},
			Location:  domain.Coordinates{Latitude: 40.7589, Longitude: -73.9851},
			Available: true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:     "driver_3",
			Name:   "Michael Chen",
			Phone:  "+1 (555) 234-5678",
			Email:  "michael.chen@example.com",
			Rating: 4.7,
			Photo:  "https://ui-avatars.com/api/?name=Michael+Chen&background=4A80F0&color=fff",
			Car: domain.Vehicle{
				Model: "Tesla Model 3",
				Color: "White",
				Plate: "EV 1234",
			},
			Location:  domain.Coordinates{Latitude: 40.7549, Longitude: -73.9840},
			Available: true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, driver := range drivers {
		if err := repo.Create(ctx, driver); err != nil {
			return err
		}
	}
	return nil
}
