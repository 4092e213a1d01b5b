package admin

import (
	"github.com/vivla-tech/vivla-guides-sub001/internal/api"
)

// Schemas returns the workflow schemas for every admin resource, in the
// order the screens present them.
func Schemas() []*Schema {
	return []*Schema{
		HomeSchema(),
		RoomSchema(),
		RoomTypeSchema(),
		AmenitySchema(),
		BrandSchema(),
		CategorySchema(),
		SupplierSchema(),
		HomeInventorySchema(),
		StylingGuideSchema(),
		ApplianceGuideSchema(),
		PlaybookSchema(),
		TechnicalPlanSchema(),
	}
}

// SchemaFor returns the schema for a resource type, or nil.
func SchemaFor(res api.ResourceType) *Schema {
	for _, s := range Schemas() {
		if s.Resource == res {
			return s
		}
	}
	return nil
}

// HomeSchema describes the homes screen.
func HomeSchema() *Schema {
	return &Schema{
		Resource: api.ResourceHomes,
		Title:    "Homes",
		Columns: []Column{
			{Key: "name", Title: "Name", Width: 24},
			{Key: "destination", Title: "Destination", Width: 16},
			{Key: "address", Title: "Address", Width: 32},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "destination", Label: "Destination", Kind: FieldText, Required: true},
			{Name: "address", Label: "Address", Kind: FieldText, Required: true},
			{Name: "main_image", Label: "Main image", Kind: FieldURL},
			{Name: "image_urls", Label: "Gallery", Kind: FieldImages},
		},
	}
}

// RoomSchema describes the rooms screen.
func RoomSchema() *Schema {
	return &Schema{
		Resource: api.ResourceRooms,
		Title:    "Rooms",
		Columns: []Column{
			{Key: "name", Title: "Name", Width: 24},
			{Key: "home_id", Title: "Home", Width: 24},
			{Key: "room_type_id", Title: "Type", Width: 20},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "home_id", Label: "Home", Kind: FieldRef, Required: true, Ref: api.ResourceHomes},
			{Name: "room_type_id", Label: "Room type", Kind: FieldRef, Required: true, Ref: api.ResourceRoomTypes},
		},
	}
}

// RoomTypeSchema describes the room types screen.
func RoomTypeSchema() *Schema {
	return &Schema{
		Resource: api.ResourceRoomTypes,
		Title:    "Room types",
		Columns: []Column{
			{Key: "name", Title: "Name", Width: 24},
			{Key: "description", Title: "Description", Width: 40},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "description", Label: "Description", Kind: FieldText},
		},
	}
}

// AmenitySchema describes the amenities screen.
func AmenitySchema() *Schema {
	return &Schema{
		Resource: api.ResourceAmenities,
		Title:    "Amenities",
		Columns: []Column{
			{Key: "name", Title: "Name", Width: 24},
			{Key: "description", Title: "Description", Width: 40},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "description", Label: "Description", Kind: FieldText},
		},
	}
}

// BrandSchema describes the brands screen.
func BrandSchema() *Schema {
	return &Schema{
		Resource: api.ResourceBrands,
		Title:    "Brands",
		Columns: []Column{
			{Key: "name", Title: "Name", Width: 24},
			{Key: "website", Title: "Website", Width: 32},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "website", Label: "Website", Kind: FieldURL},
			{Name: "logo_url", Label: "Logo URL", Kind: FieldURL},
		},
	}
}

// CategorySchema describes the categories screen.
func CategorySchema() *Schema {
	return &Schema{
		Resource: api.ResourceCategories,
		Title:    "Categories",
		Columns: []Column{
			{Key: "name", Title: "Name", Width: 24},
			{Key: "description", Title: "Description", Width: 40},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "description", Label: "Description", Kind: FieldText},
		},
	}
}

// SupplierSchema describes the suppliers screen.
func SupplierSchema() *Schema {
	return &Schema{
		Resource: api.ResourceSuppliers,
		Title:    "Suppliers",
		Columns: []Column{
			{Key: "name", Title: "Name", Width: 24},
			{Key: "contact_email", Title: "Email", Width: 28},
			{Key: "phone", Title: "Phone", Width: 16},
		},
		Fields: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "contact_email", Label: "Contact email", Kind: FieldEmail},
			{Name: "phone", Label: "Phone", Kind: FieldText},
			{Name: "website", Label: "Website", Kind: FieldURL},
		},
	}
}

// HomeInventorySchema describes the inventory screen.
func HomeInventorySchema() *Schema {
	return &Schema{
		Resource: api.ResourceHomeInventory,
		Title:    "Inventory",
		Columns: []Column{
			{Key: "name", Title: "Item", Width: 24},
			{Key: "quantity", Title: "Qty", Width: 6},
			{Key: "price", Title: "Price", Width: 10},
			{Key: "threshold", Title: "Min", Width: 6},
		},
		Fields: []Field{
			{Name: "name", Label: "Item", Kind: FieldText, Required: true},
			{Name: "home_id", Label: "Home", Kind: FieldRef, Required: true, Ref: api.ResourceHomes},
			{Name: "room_id", Label: "Room", Kind: FieldRef, Ref: api.ResourceRooms},
			{Name: "category_id", Label: "Category", Kind: FieldRef, Ref: api.ResourceCategories},
			{Name: "brand_id", Label: "Brand", Kind: FieldRef, Ref: api.ResourceBrands},
			{Name: "supplier_id", Label: "Supplier", Kind: FieldRef, Ref: api.ResourceSuppliers},
			{Name: "quantity", Label: "Quantity", Kind: FieldInt, Required: true, Min: minValue(1)},
			{Name: "price", Label: "Price", Kind: FieldFloat, Min: minValue(0)},
			{Name: "threshold", Label: "Restock threshold", Kind: FieldInt, Min: minValue(0)},
		},
	}
}

// StylingGuideSchema describes the styling guides screen.
func StylingGuideSchema() *Schema {
	return &Schema{
		Resource: api.ResourceStylingGuides,
		Title:    "Styling guides",
		Columns: []Column{
			{Key: "title", Title: "Title", Width: 32},
			{Key: "room_id", Title: "Room", Width: 24},
		},
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true},
			{Name: "room_id", Label: "Room", Kind: FieldRef, Required: true, Ref: api.ResourceRooms},
			{Name: "notes", Label: "Notes", Kind: FieldText},
			{Name: "image_urls", Label: "Images", Kind: FieldImages},
		},
	}
}

// ApplianceGuideSchema describes the appliance guides screen.
func ApplianceGuideSchema() *Schema {
	return &Schema{
		Resource: api.ResourceApplianceGuides,
		Title:    "Appliance guides",
		Columns: []Column{
			{Key: "title", Title: "Title", Width: 32},
			{Key: "room_id", Title: "Room", Width: 24},
			{Key: "manual_url", Title: "Manual", Width: 28},
		},
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true},
			{Name: "room_id", Label: "Room", Kind: FieldRef, Required: true, Ref: api.ResourceRooms},
			{Name: "brand_id", Label: "Brand", Kind: FieldRef, Ref: api.ResourceBrands},
			{Name: "manual_url", Label: "Manual URL", Kind: FieldURL},
			{Name: "steps", Label: "Steps", Kind: FieldText},
			{Name: "image_urls", Label: "Images", Kind: FieldImages},
		},
	}
}

// PlaybookSchema describes the playbooks screen.
func PlaybookSchema() *Schema {
	return &Schema{
		Resource: api.ResourcePlaybooks,
		Title:    "Playbooks",
		Columns: []Column{
			{Key: "title", Title: "Title", Width: 32},
			{Key: "home_id", Title: "Home", Width: 24},
		},
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true},
			{Name: "home_id", Label: "Home", Kind: FieldRef, Required: true, Ref: api.ResourceHomes},
			{Name: "description", Label: "Description", Kind: FieldText},
		},
	}
}

// TechnicalPlanSchema describes the technical plans screen.
func TechnicalPlanSchema() *Schema {
	return &Schema{
		Resource: api.ResourceTechnicalPlans,
		Title:    "Technical plans",
		Columns: []Column{
			{Key: "title", Title: "Title", Width: 32},
			{Key: "home_id", Title: "Home", Width: 24},
			{Key: "plan_url", Title: "Plan", Width: 28},
		},
		Fields: []Field{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true},
			{Name: "home_id", Label: "Home", Kind: FieldRef, Required: true, Ref: api.ResourceHomes},
			{Name: "plan_url", Label: "Plan URL", Kind: FieldURL},
		},
	}
}
