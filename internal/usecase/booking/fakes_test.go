package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/barberlink/booking-api/internal/domain/booking"
	"github.com/barberlink/booking-api/internal/models"
)

// ======================================================
// IN-MEMORY FAKES
// ======================================================

type fakeBookingRepo struct {
	byID    map[uint]*domain.Booking
	nextID  uint
	saveErr error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byID: make(map[uint]*domain.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uint) (*domain.Booking, error) {
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking_not_found", "booking %d not found", id)
	}
	return b, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.nextID++
	b.SetID(r.nextID)
	r.byID[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) Save(_ context.Context, b *domain.Booking) error {
	if r.saveErr != nil {
		return r.saveErr
	}
	r.byID[b.ID()] = b
	return nil
}

func (r *fakeBookingRepo) FindConflicting(_ context.Context, providerID uint, slot domain.TimeSlot) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.ProviderID() == providerID && b.IsActive() && slot.Overlaps(b.Slot()) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindActiveByProviderAndRange(_ context.Context, providerID uint, start, end time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		s := b.Slot().Start()
		if b.ProviderID() == providerID && b.IsActive() && !s.Before(start) && s.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByProviderAndRange(_ context.Context, providerID uint, start, end time.Time) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		s := b.Slot().Start()
		if b.ProviderID() == providerID && !s.Before(start) && s.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByCustomer(_ context.Context, customerID uint) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range r.byID {
		if b.CustomerID() == customerID {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeProviderRepo struct {
	barbers   map[uint]*models.Barber
	schedules map[uint]domain.WeekSchedule
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{
		barbers:   make(map[uint]*models.Barber),
		schedules: make(map[uint]domain.WeekSchedule),
	}
}

func (r *fakeProviderRepo) FindByID(_ context.Context, id uint) (*models.Barber, error) {
	b, ok := r.barbers[id]
	if !ok {
		return nil, domain.NewNotFoundError("barber_not_found", "barber %d not found", id)
	}
	return b, nil
}

func (r *fakeProviderRepo) FindActiveForService(_ context.Context, barbershopID uint, svc *models.Service) ([]models.Barber, error) {
	var out []models.Barber
	for _, b := range r.barbers {
		if b.BarbershopID == barbershopID && b.Active && b.HasSkills(svc.RequiredSkillList()) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *fakeProviderRepo) WeekScheduleFor(_ context.Context, barberID uint) (domain.WeekSchedule, error) {
	ws, ok := r.schedules[barberID]
	if !ok {
		return domain.DefaultWeekSchedule(), nil
	}
	return ws, nil
}

func (r *fakeProviderRepo) ReplaceWeekSchedule(_ context.Context, barberID uint, ws domain.WeekSchedule) error {
	r.schedules[barberID] = ws
	return nil
}

type fakeServiceRepo struct {
	services map[uint]*models.Service
}

func (r *fakeServiceRepo) FindByID(_ context.Context, barbershopID, serviceID uint) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok || svc.BarbershopID != barbershopID {
		return nil, domain.NewNotFoundError("service_not_found", "service %d not found", serviceID)
	}
	return svc, nil
}

type fakeShopRepo struct {
	shops map[uint]*models.Barbershop
}

func (r *fakeShopRepo) FindByID(_ context.Context, id uint) (*models.Barbershop, error) {
	shop, ok := r.shops[id]
	if !ok {
		return nil, domain.NewNotFoundError("barbershop_not_found", "barbershop %d not found", id)
	}
	return shop, nil
}

func (r *fakeShopRepo) FindBySlug(_ context.Context, slug string) (*models.Barbershop, error) {
	for _, shop := range r.shops {
		if shop.Slug == slug {
			return shop, nil
		}
	}
	return nil, domain.NewNotFoundError("barbershop_not_found", "barbershop %q not found", slug)
}

type fakeCustomerRepo struct {
	customers map[uint]*models.Customer
	nextID    uint
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, barbershopID, customerID uint) (*models.Customer, error) {
	c, ok := r.customers[customerID]
	if !ok || c.BarbershopID != barbershopID {
		return nil, domain.NewNotFoundError("customer_not_found", "customer %d not found", customerID)
	}
	return c, nil
}

func (r *fakeCustomerRepo) GetOrCreate(_ context.Context, barbershopID uint, name, phone, email string) (*models.Customer, error) {
	for _, c := range r.customers {
		if c.BarbershopID == barbershopID && c.Phone == phone {
			return c, nil
		}
	}
	r.nextID++
	c := &models.Customer{ID: r.nextID, BarbershopID: barbershopID, Name: name, Phone: phone, Email: email}
	r.customers[c.ID] = c
	return c, nil
}

type capturingPublisher struct {
	events []domain.Event
}

func (p *capturingPublisher) Publish(ev domain.Event) {
	p.events = append(p.events, ev)
}

func (p *capturingPublisher) names() []string {
	var out []string
	for _, ev := range p.events {
		out = append(out, ev.Name())
	}
	return out
}

// ======================================================
// FIXTURE
// ======================================================

const (
	testShopID    uint = 1
	testBarberID  uint = 10
	testServiceID uint = 20
	testCustomerID uint = 30
)

// A Monday far enough out that the advance window never interferes.
var fixtureDay = time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)

type fixture struct {
	bookings  *fakeBookingRepo
	providers *fakeProviderRepo
	services  *fakeServiceRepo
	shops     *fakeShopRepo
	customers *fakeCustomerRepo
	publisher *capturingPublisher
}

func newFixture() *fixture {
	f := &fixture{
		bookings:  newFakeBookingRepo(),
		providers: newFakeProviderRepo(),
		services:  &fakeServiceRepo{services: make(map[uint]*models.Service)},
		shops:     &fakeShopRepo{shops: make(map[uint]*models.Barbershop)},
		customers: &fakeCustomerRepo{customers: make(map[uint]*models.Customer)},
		publisher: &capturingPublisher{},
	}

	f.shops.shops[testShopID] = &models.Barbershop{
		ID:       testShopID,
		Name:     "Downtown Cuts",
		Slug:     "downtown-cuts",
		Timezone: "UTC",
	}
	f.providers.barbers[testBarberID] = &models.Barber{
		ID:           testBarberID,
		BarbershopID: testShopID,
		Name:         "Marcos",
		Skills:       "haircut,beard",
		Active:       true,
	}
	f.services.services[testServiceID] = &models.Service{
		ID:           testServiceID,
		BarbershopID: testShopID,
		Name:         "Classic Cut",
		DurationMin:  30,
		Active:       true,
	}
	f.customers.customers[testCustomerID] = &models.Customer{
		ID:           testCustomerID,
		BarbershopID: testShopID,
		Name:         "Paulo",
		Phone:        "+5511999990000",
	}
	return f
}

// seedBooking plants a stored booking on the fixture barber starting at
// hour:min on the fixture day.
func (f *fixture) seedBooking(t *testing.T, id uint, status domain.Status, hour, min, durationMin int) *domain.Booking {
	t.Helper()
	start := fixtureDay.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute)
	slot, err := domain.TimeSlotFromStorage(start, start.Add(time.Duration(durationMin)*time.Minute))
	require.NoError(t, err)

	b, err := domain.Restore(domain.RestoreParams{
		ID:         id,
		ProviderID: testBarberID,
		CustomerID: testCustomerID,
		ServiceID:  testServiceID,
		Slot:       slot,
		Status:     status,
	})
	require.NoError(t, err)
	f.bookings.byID[id] = b
	if id > f.bookings.nextID {
		f.bookings.nextID = id
	}
	return b
}
