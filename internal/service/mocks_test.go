package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/naufal/go-antar/internal/cache"
	apperrors "github.com/naufal/go-antar/internal/errors"
	"github.com/naufal/go-antar/internal/geo"
	"github.com/naufal/go-antar/internal/models"
)

// fakeStore is an in-memory stand-in for Postgres shared by the fake
// repositories in this package's tests.
type fakeStore struct {
	users    map[string]*models.User
	profiles map[string]*models.DriverProfile // keyed by user id
	orders   map[string]*models.Order
	bids     map[string]*models.DriverBid
	subs     []*models.DriverSubscription
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		profiles: make(map[string]*models.DriverProfile),
		orders:   make(map[string]*models.Order),
		bids:     make(map[string]*models.DriverBid),
	}
}

func (s *fakeStore) addUser(role string) *models.User {
	u := &models.User{
		ID:        uuid.New().String(),
		Email:     uuid.New().String() + "@example.com",
		FullName:  "Test User",
		Phone:     "08123456789",
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	s.users[u.ID] = u
	return u
}

func (s *fakeStore) addDriver(available bool, lat, lng *float64, subExpiry *time.Time) (*models.User, *models.DriverProfile) {
	u := s.addUser(models.RoleDriver)
	p := &models.DriverProfile{
		ID:                    uuid.New().String(),
		UserID:                u.ID,
		IsAvailable:           available,
		CurrentLat:            lat,
		CurrentLng:            lng,
		SubscriptionExpiresAt: subExpiry,
	}
	s.profiles[u.ID] = p
	return u, p
}

func (s *fakeStore) addOrder(passengerID, status string, estimatedFare float64) *models.Order {
	o := &models.Order{
		ID:            uuid.New().String(),
		PassengerID:   passengerID,
		PickupLat:     -6.2088,
		PickupLng:     106.8456,
		PickupAddress: "Jl. Sudirman 1",
		EstimatedFare: estimatedFare,
		Status:        status,
		PaymentStatus: models.PaymentStatusUnpaid,
		CreatedAt:     time.Now(),
	}
	s.orders[o.ID] = o
	return o
}

func (s *fakeStore) addBid(orderID, driverID string, amount float64, etaMinutes int) *models.DriverBid {
	b := &models.DriverBid{
		ID:                      uuid.New().String(),
		OrderID:                 orderID,
		DriverID:                driverID,
		BidAmount:               amount,
		EstimatedArrivalMinutes: etaMinutes,
		CreatedAt:               time.Now(),
	}
	s.bids[b.ID] = b
	return b
}

type fakeUserRepo struct{ s *fakeStore }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User, profile *models.DriverProfile) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.s.users[user.ID] = user
	if profile != nil {
		if profile.ID == "" {
			profile.ID = uuid.New().String()
		}
		profile.UserID = user.ID
		r.s.profiles[user.ID] = profile
	}
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return r.s.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeDriverRepo struct{ s *fakeStore }

func (r *fakeDriverRepo) Create(ctx context.Context, profile *models.DriverProfile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	r.s.profiles[profile.UserID] = profile
	return nil
}

func (r *fakeDriverRepo) GetByUserID(ctx context.Context, userID string) (*models.DriverProfile, error) {
	return r.s.profiles[userID], nil
}

func (r *fakeDriverRepo) GetByUserIDs(ctx context.Context, userIDs []string) ([]*models.DriverProfile, error) {
	var result []*models.DriverProfile
	for _, id := range userIDs {
		if p, ok := r.s.profiles[id]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

func (r *fakeDriverRepo) UpdateVehicle(ctx context.Context, profile *models.DriverProfile) error {
	stored, ok := r.s.profiles[profile.UserID]
	if !ok {
		return errors.New("no such profile")
	}
	stored.LicenseNumber = profile.LicenseNumber
	stored.VehicleType = profile.VehicleType
	stored.VehiclePlate = profile.VehiclePlate
	return nil
}

func (r *fakeDriverRepo) UpdateLocation(ctx context.Context, userID string, lat, lng float64, isAvailable bool) error {
	p, ok := r.s.profiles[userID]
	if !ok {
		return errors.New("no such profile")
	}
	p.CurrentLat = &lat
	p.CurrentLng = &lng
	p.IsAvailable = isAvailable
	return nil
}

func (r *fakeDriverRepo) GetMatchable(ctx context.Context) ([]*models.DriverProfile, error) {
	now := time.Now()
	var result []*models.DriverProfile
	for _, p := range r.s.profiles {
		u := r.s.users[p.UserID]
		if u == nil || u.Role != models.RoleDriver {
			continue
		}
		if p.IsAvailable && p.HasLocation() && p.HasActiveSubscription(now) {
			result = append(result, p)
		}
	}
	return result, nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	order.Status = models.OrderStatusPending
	order.PaymentStatus = models.PaymentStatusUnpaid
	order.CreatedAt = time.Now()
	r.s.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByIDAndPassenger(ctx context.Context, id, passengerID string) (*models.Order, error) {
	o, ok := r.s.orders[id]
	if !ok || o.PassengerID != passengerID {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *fakeOrderRepo) GetByPassengerID(ctx context.Context, passengerID string) ([]*models.Order, error) {
	var result []*models.Order
	for _, o := range r.s.orders {
		if o.PassengerID == passengerID {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeOrderRepo) GetByDriverID(ctx context.Context, driverID string) ([]*models.Order, error) {
	var result []*models.Order
	for _, o := range r.s.orders {
		if o.DriverID != nil && *o.DriverID == driverID {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *fakeOrderRepo) GetPendingUnassigned(ctx context.Context) ([]*models.Order, error) {
	var result []*models.Order
	for _, o := range r.s.orders {
		if o.Status == models.OrderStatusPending && o.DriverID == nil {
			result = append(result, o)
		}
	}
	return result, nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, id, status, paymentStatus string, finalFare *float64) error {
	o, ok := r.s.orders[id]
	if !ok {
		return errors.New("no such order")
	}
	o.Status = status
	o.PaymentStatus = paymentStatus
	if finalFare != nil {
		o.FinalFare = finalFare
	}
	return nil
}

func (r *fakeOrderRepo) AcceptBid(ctx context.Context, orderID, driverID string, finalFare float64) (bool, error) {
	o, ok := r.s.orders[orderID]
	if !ok || o.Status != models.OrderStatusPending {
		return false, nil
	}
	o.Status = models.OrderStatusAccepted
	o.DriverID = &driverID
	o.FinalFare = &finalFare
	return true, nil
}

func (r *fakeOrderRepo) MarkPaid(ctx context.Context, id, paymentRef string) error {
	o, ok := r.s.orders[id]
	if !ok {
		return errors.New("no such order")
	}
	o.PaymentStatus = models.PaymentStatusPaid
	o.QrisPaymentID = &paymentRef
	return nil
}

type fakeBidRepo struct{ s *fakeStore }

func (r *fakeBidRepo) Create(ctx context.Context, bid *models.DriverBid) error {
	if bid.ID == "" {
		bid.ID = uuid.New().String()
	}
	bid.CreatedAt = time.Now()
	r.s.bids[bid.ID] = bid
	return nil
}

func (r *fakeBidRepo) GetByIDAndOrder(ctx context.Context, bidID, orderID string) (*models.DriverBid, error) {
	b, ok := r.s.bids[bidID]
	if !ok || b.OrderID != orderID {
		return nil, nil
	}
	return b, nil
}

func (r *fakeBidRepo) GetByOrderID(ctx context.Context, orderID string) ([]*models.DriverBid, error) {
	var result []*models.DriverBid
	for _, b := range r.s.bids {
		if b.OrderID == orderID {
			result = append(result, b)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].BidAmount != result[j].BidAmount {
			return result[i].BidAmount < result[j].BidAmount
		}
		return result[i].EstimatedArrivalMinutes < result[j].EstimatedArrivalMinutes
	})
	return result, nil
}

type fakeSubRepo struct{ s *fakeStore }

func (r *fakeSubRepo) Create(ctx context.Context, sub *models.DriverSubscription) error {
	if sub.ID == "" {
		sub.ID = uuid.New().String()
	}
	r.s.subs = append(r.s.subs, sub)
	if p, ok := r.s.profiles[sub.DriverID]; ok {
		expiry := sub.ExpiresAt
		p.SubscriptionExpiresAt = &expiry
	}
	return nil
}

func assertAPIErrorCode(t interface {
	Helper()
	Fatalf(format string, args ...interface{})
}, err error, wantCode string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", wantCode)
	}
	apiErr, ok := err.(*apperrors.APIError)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Code != wantCode {
		t.Fatalf("expected error code %s, got %s (%s)", wantCode, apiErr.Code, apiErr.Message)
	}
}

// fakeGeoCache implements cache.DriverLocationCache in memory. With fail set
// it errors on lookups, forcing the DB fallback path.
type fakeGeoCache struct {
	points map[string][2]float64 // driver id -> lat, lng
	fail   bool
}

func newFakeGeoCache() *fakeGeoCache {
	return &fakeGeoCache{points: make(map[string][2]float64)}
}

func (c *fakeGeoCache) UpdateLocation(ctx context.Context, driverID string, lat, lng float64) error {
	c.points[driverID] = [2]float64{lat, lng}
	return nil
}

func (c *fakeGeoCache) Remove(ctx context.Context, driverID string) error {
	delete(c.points, driverID)
	return nil
}

func (c *fakeGeoCache) NearbyDriverIDs(ctx context.Context, lat, lng, radiusKm float64) ([]cache.DriverDistance, error) {
	if c.fail {
		return nil, errors.New("cache unavailable")
	}
	var result []cache.DriverDistance
	for id, p := range c.points {
		d := geo.HaversineKm(lat, lng, p[0], p[1])
		if d <= radiusKm {
			result = append(result, cache.DriverDistance{DriverID: id, DistanceKm: d})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].DistanceKm < result[j].DistanceKm })
	return result, nil
}
