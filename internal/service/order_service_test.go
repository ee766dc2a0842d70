package service

import (
	"context"
	"testing"

	"github.com/naufal/go-antar/internal/models"
)

func newOrderService(s *fakeStore) OrderService {
	return NewOrderService(&fakeOrderRepo{s}, &fakeBidRepo{s}, &fakeUserRepo{s})
}

func TestCreateOrderUnknownPassenger(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)

	_, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		PassengerID:        "11111111-1111-1111-1111-111111111111",
		PickupLat:          -6.2,
		PickupLng:          106.8,
		PickupAddress:      "A",
		DestinationLat:     -6.3,
		DestinationLng:     106.9,
		DestinationAddress: "B",
		EstimatedFare:      25000,
	})
	assertAPIErrorCode(t, err, "not_found")
}

func TestCreateOrderStartsPendingUnpaid(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	passenger := s.addUser(models.RolePassenger)

	order, err := svc.CreateOrder(context.Background(), &models.CreateOrderRequest{
		PassengerID:        passenger.ID,
		PickupLat:          -6.2,
		PickupLng:          106.8,
		PickupAddress:      "A",
		DestinationLat:     -6.3,
		DestinationLng:     106.9,
		DestinationAddress: "B",
		EstimatedFare:      25000,
	})
	if err != nil {
		t.Fatalf("CreateOrder() error: %v", err)
	}
	if order.Status != models.OrderStatusPending {
		t.Errorf("new order status = %s, want pending", order.Status)
	}
	if order.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("new order payment status = %s, want unpaid", order.PaymentStatus)
	}
}

func TestUpdateStatusRejectsInvalidTransitions(t *testing.T) {
	allStatuses := []string{
		models.OrderStatusPending,
		models.OrderStatusAccepted,
		models.OrderStatusInProgress,
		models.OrderStatusCompleted,
		models.OrderStatusCancelled,
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			s := newFakeStore()
			svc := newOrderService(s)
			passenger := s.addUser(models.RolePassenger)
			order := s.addOrder(passenger.ID, from, 25000)

			_, err := svc.UpdateStatus(context.Background(), order.ID, &models.UpdateOrderStatusRequest{Status: to})

			if (&models.Order{Status: from}).CanTransitionTo(to) {
				if err != nil {
					t.Errorf("transition %s -> %s should be allowed, got %v", from, to, err)
				}
			} else {
				assertAPIErrorCode(t, err, "invalid_transition")
			}
		}
	}
}

func TestUpdateStatusNotFound(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)

	_, err := svc.UpdateStatus(context.Background(), "22222222-2222-2222-2222-222222222222",
		&models.UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})
	assertAPIErrorCode(t, err, "not_found")
}

func TestUpdateStatusCompletedForcesPaidAndFinalFare(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	passenger := s.addUser(models.RolePassenger)
	order := s.addOrder(passenger.ID, models.OrderStatusInProgress, 25000)

	finalFare := 27500.0
	updated, err := svc.UpdateStatus(context.Background(), order.ID, &models.UpdateOrderStatusRequest{
		Status:    models.OrderStatusCompleted,
		FinalFare: &finalFare,
	})
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusPaid {
		t.Errorf("payment status = %s, want paid", updated.PaymentStatus)
	}
	if updated.FinalFare == nil || *updated.FinalFare != finalFare {
		t.Errorf("final fare = %v, want %v", updated.FinalFare, finalFare)
	}
}

func TestUpdateStatusCancelledRefundsOnlyPaidOrders(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	passenger := s.addUser(models.RolePassenger)

	paid := s.addOrder(passenger.ID, models.OrderStatusAccepted, 25000)
	paid.PaymentStatus = models.PaymentStatusPaid

	updated, err := svc.UpdateStatus(context.Background(), paid.ID,
		&models.UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusRefunded {
		t.Errorf("paid order cancelled: payment status = %s, want refunded", updated.PaymentStatus)
	}

	unpaid := s.addOrder(passenger.ID, models.OrderStatusPending, 25000)
	updated, err = svc.UpdateStatus(context.Background(), unpaid.ID,
		&models.UpdateOrderStatusRequest{Status: models.OrderStatusCancelled})
	if err != nil {
		t.Fatalf("UpdateStatus() error: %v", err)
	}
	if updated.PaymentStatus != models.PaymentStatusUnpaid {
		t.Errorf("unpaid order cancelled: payment status = %s, want unpaid", updated.PaymentStatus)
	}
}

func TestAcceptBidScenario(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	passenger := s.addUser(models.RolePassenger)
	driver1 := s.addUser(models.RoleDriver)
	driver2 := s.addUser(models.RoleDriver)

	order := s.addOrder(passenger.ID, models.OrderStatusPending, 25000)
	cheap := s.addBid(order.ID, driver1.ID, 23000, 15)
	s.addBid(order.ID, driver2.ID, 25000, 10)

	updated, err := svc.AcceptBid(context.Background(), order.ID, &models.AcceptBidRequest{
		BidID:       cheap.ID,
		PassengerID: passenger.ID,
	})
	if err != nil {
		t.Fatalf("AcceptBid() error: %v", err)
	}
	if updated.Status != models.OrderStatusAccepted {
		t.Errorf("status = %s, want accepted", updated.Status)
	}
	if updated.DriverID == nil || *updated.DriverID != driver1.ID {
		t.Errorf("driver id = %v, want %s", updated.DriverID, driver1.ID)
	}
	if updated.FinalFare == nil || *updated.FinalFare != 23000 {
		t.Errorf("final fare = %v, want 23000", updated.FinalFare)
	}
}

func TestAcceptBidWrongPassengerIsNotFound(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	owner := s.addUser(models.RolePassenger)
	other := s.addUser(models.RolePassenger)
	driver := s.addUser(models.RoleDriver)

	order := s.addOrder(owner.ID, models.OrderStatusPending, 25000)
	bid := s.addBid(order.ID, driver.ID, 23000, 15)

	// Same error for "missing" and "not yours".
	_, err := svc.AcceptBid(context.Background(), order.ID, &models.AcceptBidRequest{
		BidID:       bid.ID,
		PassengerID: other.ID,
	})
	assertAPIErrorCode(t, err, "not_found")

	_, err = svc.AcceptBid(context.Background(), "33333333-3333-3333-3333-333333333333", &models.AcceptBidRequest{
		BidID:       bid.ID,
		PassengerID: owner.ID,
	})
	assertAPIErrorCode(t, err, "not_found")
}

func TestAcceptBidFromAnotherOrderIsNotFound(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	passenger := s.addUser(models.RolePassenger)
	driver := s.addUser(models.RoleDriver)

	order := s.addOrder(passenger.ID, models.OrderStatusPending, 25000)
	otherOrder := s.addOrder(passenger.ID, models.OrderStatusPending, 30000)
	foreignBid := s.addBid(otherOrder.ID, driver.ID, 28000, 5)

	_, err := svc.AcceptBid(context.Background(), order.ID, &models.AcceptBidRequest{
		BidID:       foreignBid.ID,
		PassengerID: passenger.ID,
	})
	assertAPIErrorCode(t, err, "not_found")
}

func TestAcceptBidTwiceFailsBothTimes(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	passenger := s.addUser(models.RolePassenger)
	driver := s.addUser(models.RoleDriver)

	order := s.addOrder(passenger.ID, models.OrderStatusPending, 25000)
	bid := s.addBid(order.ID, driver.ID, 23000, 15)

	req := &models.AcceptBidRequest{BidID: bid.ID, PassengerID: passenger.ID}

	if _, err := svc.AcceptBid(context.Background(), order.ID, req); err != nil {
		t.Fatalf("first AcceptBid() error: %v", err)
	}

	_, err := svc.AcceptBid(context.Background(), order.ID, req)
	assertAPIErrorCode(t, err, "invalid_state")

	_, err = svc.AcceptBid(context.Background(), order.ID, req)
	assertAPIErrorCode(t, err, "invalid_state")
}

func TestGetUserOrdersUnknownRole(t *testing.T) {
	s := newFakeStore()
	svc := newOrderService(s)
	user := s.addUser(models.RolePassenger)

	_, err := svc.GetUserOrders(context.Background(), user.ID, "admin")
	assertAPIErrorCode(t, err, "validation_error")
}
