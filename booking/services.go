/*
services.go - Service catalog

PURPOSE:
  CRUD over the operator's priced offerings. Services are copied by value
  into appointments at booking time, so editing or deleting a service here
  never rewrites existing bookings or historical records.

PRICING:
  Prices are whole currency units; fractional input is truncated on add
  and update.
*/
package booking

import (
	"github.com/shopspring/decimal"

	"github.com/warp/booking-engine/storage"
)

// ServicesKey is the storage key for the service catalog.
const ServicesKey = "services_storage_key"

// ServiceCatalog persists the service collection as one blob.
type ServiceCatalog struct {
	kv storage.KV
}

func NewServiceCatalog(kv storage.KV) *ServiceCatalog {
	return &ServiceCatalog{kv: kv}
}

// List loads the full catalog. Decode failures yield an empty slice.
func (c *ServiceCatalog) List() []Service {
	var services []Service
	storage.LoadJSON(c.kv, ServicesKey, &services)
	return services
}

// Add creates a new service and persists the catalog.
func (c *ServiceCatalog) Add(title string, price decimal.Decimal) Service {
	svc := NewService(title, price)
	storage.SaveJSON(c.kv, ServicesKey, append(c.List(), svc))
	return svc
}

// Update edits a service's title and price. Unknown ids are a no-op.
func (c *ServiceCatalog) Update(id, newTitle string, newPrice decimal.Decimal) {
	services := c.List()
	for i := range services {
		if services[i].ID == id {
			services[i].Title = newTitle
			services[i].Price = newPrice.Truncate(0)
			storage.SaveJSON(c.kv, ServicesKey, services)
			return
		}
	}
}

// Delete removes a service from the catalog. Unknown ids are a no-op.
func (c *ServiceCatalog) Delete(id string) {
	services := c.List()
	for i := range services {
		if services[i].ID == id {
			storage.SaveJSON(c.kv, ServicesKey, append(services[:i], services[i+1:]...))
			return
		}
	}
}

// Get returns the service with the given id.
func (c *ServiceCatalog) Get(id string) (Service, bool) {
	for _, s := range c.List() {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}
