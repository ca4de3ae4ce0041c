package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/geo"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/pricing"
	"rentdesk-backend/internal/repository"

	"github.com/google/uuid"
)

const (
	minBookingDocuments = 4
	maxBookingDocuments = 10
	maxBookingPhotos    = 1
)

type rentalService struct {
	rentalRepo   repository.RentalRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	vehicleRepo  repository.VehicleRepository
	driverRepo   repository.DriverRepository
	geocoder     Geocoder
	now          func() time.Time
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	vehicleRepo repository.VehicleRepository,
	driverRepo repository.DriverRepository,
	geocoder Geocoder,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		vehicleRepo:  vehicleRepo,
		driverRepo:   driverRepo,
		geocoder:     geocoder,
		now:          time.Now,
	}
}

// newRentalCode generates the human-readable order code shown on the
// dashboard, e.g. RNT-4F2A91C3.
func newRentalCode() string {
	return "RNT-" + strings.ToUpper(uuid.New().String()[:8])
}

// CreateRental validates the whole request before any persistence, prices
// the selection, then hands one atomic booking to the store. The
// availability read here is a courtesy pre-check; the authoritative
// check-and-decrement happens inside the booking transaction.
func (s *rentalService) CreateRental(ctx context.Context, input *CreateRentalInput) (*domain.RentalWithDetails, error) {
	if err := validateDocuments(input.Documents); err != nil {
		return nil, err
	}
	if len(input.Selections) == 0 {
		return nil, domain.ErrInvalidQuantity
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, wrapStore(err)
	}

	lines := make([]pricing.Line, 0, len(input.Selections))
	products := make(map[int32]*domain.Product, len(input.Selections))
	var shortages []domain.StockShortage
	for _, sel := range input.Selections {
		if sel.Quantity < 1 {
			return nil, domain.ErrInvalidQuantity
		}
		product, err := s.productRepo.GetByID(ctx, sel.ProductID)
		if err != nil {
			return nil, wrapStore(err)
		}
		if product.AvailableCount < sel.Quantity {
			shortages = append(shortages, domain.StockShortage{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   sel.Quantity,
				Available:   product.AvailableCount,
			})
		}
		products[product.ID] = product
		lines = append(lines, pricing.Line{
			ProductID:   product.ID,
			RatePerHour: product.RentPerHour,
			Quantity:    sel.Quantity,
		})
	}
	if len(shortages) > 0 {
		return nil, &domain.InsufficientStockError{Shortages: shortages}
	}

	quote, err := pricing.BuildQuote(input.StartDate, input.ReturnDate, lines, input.AdvancePercent)
	if err != nil {
		return nil, err
	}

	location := input.Location
	if location == "" && input.LocationLat != nil && input.LocationLng != nil {
		location = s.resolveLocation(ctx, *input.LocationLat, *input.LocationLng)
	}

	rental := &domain.Rental{
		RentalCode:      newRentalCode(),
		CustomerID:      input.CustomerID,
		VehicleID:       input.VehicleID,
		DriverID:        input.DriverID,
		Location:        location,
		LocationLat:     input.LocationLat,
		LocationLng:     input.LocationLng,
		StartDate:       input.StartDate,
		ReturnDate:      input.ReturnDate,
		AdvancePercent:  quote.AdvancePercent,
		AdvanceAmount:   quote.AdvanceAmount,
		TotalAmount:     quote.TotalAmount,
		RemainingAmount: quote.RemainingAmount,
	}

	items := make([]domain.RentalLineItem, len(quote.Lines))
	for i, l := range quote.Lines {
		items[i] = domain.RentalLineItem{
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			RatePerHour: l.RatePerHour,
			Amount:      l.Amount,
		}
	}

	docs := make([]domain.RentalDocument, len(input.Documents))
	for i, d := range input.Documents {
		kind := d.Kind
		if kind == "" {
			kind = domain.DocumentKindDocument
		}
		docs[i] = domain.RentalDocument{Kind: kind, URL: d.URL, PublicID: d.PublicID}
	}

	req := &repository.BookingRequest{Rental: rental, Items: items, Documents: docs}
	if err := s.rentalRepo.CreateBooking(ctx, req); err != nil {
		var stockErr *domain.InsufficientStockError
		if errors.As(err, &stockErr) {
			return nil, err
		}
		return nil, wrapStore(err)
	}

	logger.Info("Rental booked", "rental_code", rental.RentalCode, "customer_id", customer.ID, "total", rental.TotalAmount)

	details := &domain.RentalWithDetails{
		Rental:   *rental,
		Status:   rental.Status(s.now()),
		Customer: customer,
		Items:    req.Items,
	}
	return details, nil
}

// validateDocuments enforces the booking precondition: 4-10 documents and at
// most one site photo, all already uploaded.
func validateDocuments(docs []DocumentUpload) error {
	var documents, photos int
	for _, d := range docs {
		switch d.Kind {
		case domain.DocumentKindPhoto:
			photos++
		default:
			documents++
		}
		if d.URL == "" {
			return errors.New("document is missing its upload URL")
		}
	}
	if documents < minBookingDocuments || documents > maxBookingDocuments {
		return fmt.Errorf("booking requires between %d and %d documents, got %d", minBookingDocuments, maxBookingDocuments, documents)
	}
	if photos > maxBookingPhotos {
		return fmt.Errorf("booking accepts at most %d photo, got %d", maxBookingPhotos, photos)
	}
	return nil
}

// resolveLocation reverse-geocodes coordinates, falling back to a formatted
// coordinate string. Geocoding is cosmetic and never fails a booking.
func (s *rentalService) resolveLocation(ctx context.Context, lat, lng float64) string {
	if s.geocoder == nil {
		return geo.FormatCoordinates(lat, lng)
	}
	name, err := s.geocoder.Reverse(ctx, lat, lng)
	if err != nil || name == "" {
		logger.Warn("Reverse geocoding failed, using coordinates", "lat", lat, "lng", lng, "error", err)
		return geo.FormatCoordinates(lat, lng)
	}
	return name
}

func (s *rentalService) MarkReturned(ctx context.Context, rentalID int32) (*domain.RentalWithDetails, error) {
	rental, err := s.rentalRepo.MarkReturned(ctx, rentalID, s.now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRentalNotFound), errors.Is(err, domain.ErrAlreadyReturned):
			return nil, err
		default:
			return nil, wrapStore(err)
		}
	}
	logger.Info("Rental returned", "rental_code", rental.RentalCode)
	return s.assembleDetails(ctx, rental)
}

func (s *rentalService) DeleteRental(ctx context.Context, rentalID int32) error {
	if err := s.rentalRepo.Delete(ctx, rentalID); err != nil {
		if errors.Is(err, domain.ErrRentalNotFound) {
			return err
		}
		return wrapStore(err)
	}
	logger.Info("Rental deleted", "rental_id", rentalID)
	return nil
}

func (s *rentalService) GetRental(ctx context.Context, rentalID int32) (*domain.RentalWithDetails, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, domain.ErrRentalNotFound) {
			return nil, err
		}
		return nil, wrapStore(err)
	}
	return s.assembleDetails(ctx, rental)
}

func (s *rentalService) ListRentals(ctx context.Context, status domain.RentalStatus, query string, page, pageSize int32) ([]domain.RentalWithDetails, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}
	now := s.now()
	rentals, count, err := s.rentalRepo.List(ctx, status, query, now, page, pageSize)
	if err != nil {
		return nil, 0, wrapStore(err)
	}

	details := make([]domain.RentalWithDetails, 0, len(rentals))
	for i := range rentals {
		d, err := s.assembleDetails(ctx, &rentals[i])
		if err != nil {
			return nil, 0, err
		}
		details = append(details, *d)
	}
	return details, count, nil
}

// assembleDetails joins the referenced rows the way the dashboard list view
// expects them. Missing fleet references are tolerated; a dangling customer
// is not.
func (s *rentalService) assembleDetails(ctx context.Context, rental *domain.Rental) (*domain.RentalWithDetails, error) {
	d := &domain.RentalWithDetails{
		Rental: *rental,
		Status: rental.Status(s.now()),
	}

	customer, err := s.customerRepo.GetByID(ctx, rental.CustomerID)
	if err != nil {
		return nil, wrapStore(err)
	}
	d.Customer = customer

	if rental.VehicleID != nil {
		if vehicle, err := s.vehicleRepo.GetByID(ctx, *rental.VehicleID); err == nil {
			d.Vehicle = vehicle
		}
	}
	if rental.DriverID != nil {
		if driver, err := s.driverRepo.GetByID(ctx, *rental.DriverID); err == nil {
			d.Driver = driver
		}
	}

	items, err := s.rentalRepo.GetItems(ctx, rental.ID)
	if err != nil {
		return nil, wrapStore(err)
	}
	d.Items = items

	docs, err := s.rentalRepo.GetDocuments(ctx, rental.ID)
	if err != nil {
		return nil, wrapStore(err)
	}
	d.Documents = docs

	return d, nil
}
