package api

import "strconv"

// ResourceType names a backend collection. The backend exposes the same CRUD
// contract for every one of them.
type ResourceType string

const (
	ResourceHomes           ResourceType = "homes"
	ResourceRooms           ResourceType = "rooms"
	ResourceRoomTypes       ResourceType = "room-types"
	ResourceAmenities       ResourceType = "amenities"
	ResourceBrands          ResourceType = "brands"
	ResourceCategories      ResourceType = "categories"
	ResourceSuppliers       ResourceType = "suppliers"
	ResourceHomeInventory   ResourceType = "home-inventory"
	ResourceStylingGuides   ResourceType = "styling-guides"
	ResourceApplianceGuides ResourceType = "appliance-guides"
	ResourcePlaybooks       ResourceType = "playbooks"
	ResourceTechnicalPlans  ResourceType = "technical-plans"
)

// Meta is the pagination metadata the backend returns alongside every list.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Page is one page of records plus its metadata.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	Total      int
	TotalPages int
}

// Record is the dynamic record shape the admin screens work with. Typed
// structs below exist for programmatic use; the generic table/form workflow
// does not need to know the concrete type.
type Record = map[string]any

// RecordID extracts the backend-assigned identifier from a dynamic record.
// Numeric identifiers arrive as float64 through encoding/json.
func RecordID(r Record) string {
	switch id := r["id"].(type) {
	case string:
		return id
	case float64:
		return strconv.FormatInt(int64(id), 10)
	default:
		return ""
	}
}

// Home is a managed property.
type Home struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Destination string   `json:"destination"`
	Address     string   `json:"address"`
	MainImage   string   `json:"main_image,omitempty"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
}

// Room is a room inside a home.
type Room struct {
	ID         string `json:"id"`
	HomeID     string `json:"home_id"`
	RoomTypeID string `json:"room_type_id"`
	Name       string `json:"name"`
	CreatedAt  string `json:"created_at,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
}

// RoomType classifies rooms (bedroom, kitchen, ...).
type RoomType struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Amenity is a bookable or listed home feature.
type Amenity struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Brand identifies an appliance or furniture manufacturer.
type Brand struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	LogoURL string `json:"logo_url,omitempty"`
}

// Category groups inventory items.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Supplier is a vendor homes order from.
type Supplier struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Website      string `json:"website,omitempty"`
}

// HomeInventory is a stocked item in a home.
type HomeInventory struct {
	ID         string  `json:"id"`
	HomeID     string  `json:"home_id"`
	RoomID     string  `json:"room_id,omitempty"`
	CategoryID string  `json:"category_id,omitempty"`
	BrandID    string  `json:"brand_id,omitempty"`
	SupplierID string  `json:"supplier_id,omitempty"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Threshold  int     `json:"threshold"`
}

// StylingGuide documents how a room should be staged.
type StylingGuide struct {
	ID        string   `json:"id"`
	RoomID    string   `json:"room_id"`
	Title     string   `json:"title"`
	Notes     string   `json:"notes,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// ApplianceGuide documents how to operate an appliance.
type ApplianceGuide struct {
	ID        string   `json:"id"`
	RoomID    string   `json:"room_id"`
	BrandID   string   `json:"brand_id,omitempty"`
	Title     string   `json:"title"`
	ManualURL string   `json:"manual_url,omitempty"`
	Steps     string   `json:"steps,omitempty"`
	ImageURLs []string `json:"image_urls,omitempty"`
}

// Playbook is an operational checklist for a home.
type Playbook struct {
	ID          string `json:"id"`
	HomeID      string `json:"home_id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// TechnicalPlan is a technical drawing or schematic attached to a home.
type TechnicalPlan struct {
	ID      string `json:"id"`
	HomeID  string `json:"home_id"`
	Title   string `json:"title"`
	PlanURL string `json:"plan_url,omitempty"`
}
