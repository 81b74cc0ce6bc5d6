package domain

import "time"

// VehicleStatus is the operational state of a vehicle in the fleet
type VehicleStatus string

const (
	VehicleStatusActive       VehicleStatus = "active"
	VehicleStatusMaintenance  VehicleStatus = "maintenance"
	VehicleStatusOutOfService VehicleStatus = "out_of_service"
)

// IsValidVehicleStatus checks if a string is a known vehicle status
func IsValidVehicleStatus(s string) bool {
	switch VehicleStatus(s) {
	case VehicleStatusActive, VehicleStatusMaintenance, VehicleStatusOutOfService:
		return true
	}
	return false
}

// MaintenanceCategory classifies a maintenance type
type MaintenanceCategory string

const (
	CategoryPreventive   MaintenanceCategory = "preventive"
	CategoryCorrective   MaintenanceCategory = "corrective"
	CategoryAmeliorative MaintenanceCategory = "ameliorative"
)

// Label returns the French display label used in reports and exports
func (c MaintenanceCategory) Label() string {
	switch c {
	case CategoryPreventive:
		return "Préventive"
	case CategoryCorrective:
		return "Corrective"
	case CategoryAmeliorative:
		return "Améliorative"
	}
	return "Catégorie inconnue"
}

// OperationStatus is the validation lifecycle state of a maintenance operation
type OperationStatus string

const (
	OperationPending   OperationStatus = "pending"
	OperationValidated OperationStatus = "validated"
	OperationRejected  OperationStatus = "rejected"
)

// UserRole distinguishes chiefs from technicians
type UserRole string

const (
	RoleChief      UserRole = "chief"
	RoleTechnician UserRole = "technician"
)

// User is a staff member of the maintenance service
type User struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	EmployeeID string    `json:"employee_id"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// VehicleType is a reference category for vehicles (truck, pickup, ...)
type VehicleType struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// Vehicle is a fleet vehicle as served by the backend.
// WarrantyEndDate is only meaningful while UnderWarranty is true.
type Vehicle struct {
	ID                 int                   `json:"id"`
	RegistrationNumber string                `json:"registration_number"`
	Brand              string                `json:"brand"`
	Model              string                `json:"model"`
	VehicleTypeID      int                   `json:"vehicle_type_id"`
	VehicleType        *VehicleType          `json:"vehicle_type,omitempty"`
	Year               int                   `json:"year,omitempty"`
	AcquisitionDate    string                `json:"acquisition_date,omitempty"`
	Status             VehicleStatus         `json:"status"`
	UnderWarranty      bool                  `json:"under_warranty"`
	WarrantyEndDate    string                `json:"warranty_end_date,omitempty"`
	ImagePath          string                `json:"image_path,omitempty"`
	FullImageURL       string                `json:"full_image_url,omitempty"`
	LastMaintenance    *MaintenanceOperation `json:"last_maintenance,omitempty"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
}

// MaintenanceType is a catalog entry with a default cost
type MaintenanceType struct {
	ID          int                 `json:"id"`
	Name        string              `json:"name"`
	Category    MaintenanceCategory `json:"category"`
	Description string              `json:"description,omitempty"`
	DefaultCost float64             `json:"default_cost"`
}

// SparePartUsage links an operation to a spare part with a price snapshot
type SparePartUsage struct {
	ID                     int        `json:"id"`
	MaintenanceOperationID int        `json:"maintenance_operation_id"`
	SparePartID            int        `json:"spare_part_id"`
	SparePart              *SparePart `json:"spare_part,omitempty"`
	QuantityUsed           int        `json:"quantity_used"`
	UnitPrice              float64    `json:"unit_price"`
	TotalPrice             float64    `json:"total_price"`
}

// MaintenanceOperation is a single maintenance intervention on a vehicle.
// TotalCost is authoritative from the backend (labor + parts at creation).
// Status transitions pending -> validated|rejected exactly once, by a chief.
type MaintenanceOperation struct {
	ID                int              `json:"id"`
	VehicleID         int              `json:"vehicle_id"`
	Vehicle           *Vehicle         `json:"vehicle,omitempty"`
	MaintenanceTypeID int              `json:"maintenance_type_id"`
	MaintenanceType   *MaintenanceType `json:"maintenance_type,omitempty"`
	TechnicianID      int              `json:"technician_id"`
	Technician        *User            `json:"technician,omitempty"`
	OperationDate     string           `json:"operation_date"`
	Description       string           `json:"description,omitempty"`
	LaborCost         float64          `json:"labor_cost"`
	PartsCost         float64          `json:"parts_cost"`
	TotalCost         float64          `json:"total_cost"`
	Status            OperationStatus  `json:"status"`
	ValidatedBy       int              `json:"validated_by,omitempty"`
	Validator         *User            `json:"validator,omitempty"`
	ValidatedAt       *time.Time       `json:"validated_at,omitempty"`
	ValidationComment string           `json:"validation_comment,omitempty"`
	SparePartUsages   []SparePartUsage `json:"spare_part_usages,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// SparePart is an inventory item
type SparePart struct {
	ID              int     `json:"id"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	Description     string  `json:"description,omitempty"`
	Unit            string  `json:"unit"`
	UnitPrice       float64 `json:"unit_price"`
	QuantityInStock int     `json:"quantity_in_stock"`
	MinimumStock    int     `json:"minimum_stock"`
	Category        string  `json:"category"`
}

// IsLowStock reports whether the part is below its configured minimum
func (p *SparePart) IsLowStock() bool {
	return p.QuantityInStock < p.MinimumStock
}

// MonthlyCost is one row of the dashboard's monthly cost series
type MonthlyCost struct {
	Month           string  `json:"month"`
	OperationsCount int     `json:"operations_count"`
	TotalCost       float64 `json:"total_cost"`
}

// CategoryCost aggregates operation costs per maintenance category
type CategoryCost struct {
	Category        MaintenanceCategory `json:"category"`
	OperationsCount int                 `json:"operations_count"`
	TotalCost       float64             `json:"total_cost"`
}

// VehicleTypeCost aggregates operation costs per vehicle type
type VehicleTypeCost struct {
	VehicleType     string  `json:"vehicle_type"`
	OperationsCount int     `json:"operations_count"`
	TotalCost       float64 `json:"total_cost"`
}

// VehicleCost is a per-vehicle cost ranking entry
type VehicleCost struct {
	VehicleID          int     `json:"vehicle_id"`
	RegistrationNumber string  `json:"registration_number"`
	Brand              string  `json:"brand"`
	Model              string  `json:"model"`
	OperationsCount    int     `json:"operations_count"`
	TotalCost          float64 `json:"total_cost"`
}

// PartConsumption is a spare-part usage aggregate for reports
type PartConsumption struct {
	SparePartID  int     `json:"spare_part_id"`
	Code         string  `json:"code"`
	Name         string  `json:"name"`
	QuantityUsed int     `json:"quantity_used"`
	TotalCost    float64 `json:"total_cost"`
}

// DashboardStats carries the counters rendered on the dashboard landing page
type DashboardStats struct {
	TotalVehicles        int     `json:"total_vehicles"`
	ActiveVehicles       int     `json:"active_vehicles"`
	MaintenanceVehicles  int     `json:"maintenance_vehicles"`
	OutOfServiceVehicles int     `json:"out_of_service_vehicles"`
	PendingOperations    int     `json:"pending_operations"`
	ValidatedOperations  int     `json:"validated_operations"`
	TotalTechnicians     int     `json:"total_technicians"`
	LowStockParts        int     `json:"low_stock_parts"`
	MonthlyCost          float64 `json:"monthly_cost"`
}

// Dashboard is the server-computed dashboard payload for a given year
type Dashboard struct {
	Stats               DashboardStats         `json:"stats"`
	MonthlyCosts        []MonthlyCost          `json:"monthly_costs"`
	CostsByCategory     []CategoryCost         `json:"costs_by_category"`
	CostsByVehicleType  []VehicleTypeCost      `json:"costs_by_vehicle_type"`
	RecentOperations    []MaintenanceOperation `json:"recent_operations,omitempty"`
	UpcomingMaintenance []Vehicle              `json:"upcoming_maintenance,omitempty"`
}

// VehicleAnalytics is the vehicles page aggregate payload
type VehicleAnalytics struct {
	TotalVehicles        int            `json:"total_vehicles"`
	ActiveVehicles       int            `json:"active_vehicles"`
	MaintenanceVehicles  int            `json:"maintenance_vehicles"`
	OutOfServiceVehicles int            `json:"out_of_service_vehicles"`
	VehiclesByType       map[string]int `json:"vehicles_by_type"`
	RecentMaintenances   []Vehicle      `json:"recent_maintenances,omitempty"`
}

// Forecast is the backend-computed next-year budget estimate.
// The gateway renders it read-only; no forecasting happens locally.
type Forecast struct {
	Year               int     `json:"year"`
	ForecastAmount     float64 `json:"forecast_amount"`
	CalculationMethod  string  `json:"calculation_method"`
	ReferenceVehicle   string  `json:"reference_vehicle,omitempty"`
	HighestVehicleCost float64 `json:"highest_vehicle_cost"`
	VehiclesCount      int     `json:"vehicles_count"`
}

// AnnualReport is the pre-aggregated annual summary returned by the backend
type AnnualReport struct {
	Year                  int               `json:"year"`
	Stats                 DashboardStats    `json:"stats"`
	MonthlyCosts          []MonthlyCost     `json:"monthly_costs"`
	CostsByCategory       []CategoryCost    `json:"costs_by_category"`
	CostsByVehicleType    []VehicleTypeCost `json:"costs_by_vehicle_type"`
	TopVehicles           []VehicleCost     `json:"top_vehicles,omitempty"`
	SparePartsConsumption []PartConsumption `json:"spare_parts_consumption,omitempty"`
	ForecastNextYear      *Forecast         `json:"forecast_next_year,omitempty"`
}

// TotalCost sums the monthly cost series
func (r *AnnualReport) TotalCost() float64 {
	var sum float64
	for _, m := range r.MonthlyCosts {
		sum += m.TotalCost
	}
	return sum
}

// TotalOperations sums the monthly operation counts
func (r *AnnualReport) TotalOperations() int {
	var sum int
	for _, m := range r.MonthlyCosts {
		sum += m.OperationsCount
	}
	return sum
}
