package models

import "time"

// VehicleEntry is one check-in of a vehicle and its optional check-out.
type VehicleEntry struct {
	ID             int64      `json:"id" db:"id"`
	NumberPlate    string     `json:"numberPlate" db:"number_plate"`
	DriverName     string     `json:"driverName" db:"driver_name"`
	PassengerCount int        `json:"passengerCount" db:"passenger_count"`
	Reason         string     `json:"reason" db:"reason"`
	FrontImage     string     `json:"frontImage" db:"front_image"`
	BackImage      string     `json:"backImage" db:"back_image"`
	Timestamp      time.Time  `json:"timestamp" db:"timestamp"`
	Exited         bool       `json:"exited" db:"exited"`
	ExitTime       *time.Time `json:"exitTime" db:"exit_time"`
}

// NewVehicleEntry carries the fields supplied at check-in.
type NewVehicleEntry struct {
	NumberPlate    string
	DriverName     string
	PassengerCount int
	Reason         string
	FrontImage     string
	BackImage      string
	Timestamp      *time.Time
}

// CountFilter bounds CountEntries. A nil Start counts every entry; Start
// alone counts entries on that calendar day; Start and End count the closed
// interval between them.
type CountFilter struct {
	Start *time.Time
	End   *time.Time
}
