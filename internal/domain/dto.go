package domain

// PaginatedResponse is the list envelope returned by every backend list
// endpoint and forwarded unchanged to the browser.
type PaginatedResponse[T any] struct {
	Data        []T `json:"data"`
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	From        int `json:"from,omitempty"`
	To          int `json:"to,omitempty"`
}

// APIResponse wraps single-entity mutation responses ({"data": ...})
type APIResponse[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// LoginRequest carries credentials for the backend /login endpoint
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is what the backend returns on successful login
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// VehicleRequest is the create/update payload for a vehicle.
// WarrantyEndDate is required when UnderWarranty is set and must be
// cleared when it is not: the backend must never receive a stale date.
type VehicleRequest struct {
	RegistrationNumber string `json:"registration_number" validate:"required"`
	Brand              string `json:"brand" validate:"required"`
	Model              string `json:"model" validate:"required"`
	VehicleTypeID      int    `json:"vehicle_type_id" validate:"required,gt=0"`
	Year               int    `json:"year,omitempty" validate:"omitempty,gte=1950,lte=2100"`
	AcquisitionDate    string `json:"acquisition_date,omitempty"`
	Status             string `json:"status" validate:"required,oneof=active maintenance out_of_service"`
	UnderWarranty      bool   `json:"under_warranty"`
	WarrantyEndDate    string `json:"warranty_end_date,omitempty" validate:"required_if=UnderWarranty true"`
}

// SparePartUsageRequest is one spare-part line of an operation payload
type SparePartUsageRequest struct {
	SparePartID  int `json:"spare_part_id" validate:"required,gt=0"`
	QuantityUsed int `json:"quantity_used" validate:"required,gt=0"`
}

// MaintenanceOperationRequest is the creation payload for an operation.
// The backend recomputes the total cost; the gateway only checks shape.
type MaintenanceOperationRequest struct {
	VehicleID         int                     `json:"vehicle_id" validate:"required,gt=0"`
	MaintenanceTypeID int                     `json:"maintenance_type_id" validate:"required,gt=0"`
	TechnicianID      int                     `json:"technician_id" validate:"required,gt=0"`
	OperationDate     string                  `json:"operation_date" validate:"required"`
	Description       string                  `json:"description,omitempty"`
	LaborCost         float64                 `json:"labor_cost" validate:"gte=0"`
	PartsCost         float64                 `json:"parts_cost" validate:"gte=0"`
	SpareParts        []SparePartUsageRequest `json:"spare_parts,omitempty" validate:"dive"`
}

// ValidationRequest is the chief's decision on a pending operation.
// Comment is mandatory when rejecting; the service enforces it before
// any network call so the backend never sees a bare rejection.
type ValidationRequest struct {
	Status  string `json:"status" validate:"required,oneof=validated rejected"`
	Comment string `json:"comment,omitempty"`
}

// SparePartRequest is the create/update payload for an inventory item
type SparePartRequest struct {
	Code            string  `json:"code" validate:"required"`
	Name            string  `json:"name" validate:"required"`
	Description     string  `json:"description,omitempty"`
	Unit            string  `json:"unit" validate:"required"`
	UnitPrice       float64 `json:"unit_price" validate:"gte=0"`
	QuantityInStock int     `json:"quantity_in_stock" validate:"gte=0"`
	MinimumStock    int     `json:"minimum_stock" validate:"gte=0"`
	Category        string  `json:"category" validate:"required"`
}

// StockUpdateRequest adjusts a part's stock level
type StockUpdateRequest struct {
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
	Operation string `json:"operation" validate:"required,oneof=add remove"`
}

// UserRequest is the create/update payload for a staff member
type UserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role       string `json:"role" validate:"required,oneof=chief technician"`
	EmployeeID string `json:"employee_id" validate:"required"`
	IsActive   *bool  `json:"is_active,omitempty"`
}

// ListParams is the query shape shared by all list endpoints
type ListParams struct {
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
	Search  string            `json:"search,omitempty"`
	Filters map[string]string `json:"filters,omitempty"`
}
