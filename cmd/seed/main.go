package main

import (
	"context"
	"log"
	"time"

	"nyumbastay/internal/database"
	"nyumbastay/internal/domain"
	"nyumbastay/internal/pkg/ident"
	"nyumbastay/internal/pkg/rate"
	"nyumbastay/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("nyumbastay.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	staffRepo := repository.NewStaffRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	log.Println("Running migrations...")
	for _, m := range []interface{ Migrate() error }{
		userRepo, roomRepo, reservationRepo, transactionRepo, reviewRepo, staffRepo, notificationRepo,
	} {
		if err := m.Migrate(); err != nil {
			log.Fatal("migrate failed:", err)
		}
	}

	// Cleanup old data in dependency order.
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM reviews")
	db.Exec("DELETE FROM transactions")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM staff_slot_payments")
	db.Exec("DELETE FROM staff_accounts")
	db.Exec("DELETE FROM rooms")
	db.Exec("DELETE FROM users")

	ctx := context.Background()

	// ================== USERS ==================
	log.Println("Creating users...")

	guestHash, _ := bcrypt.GenerateFromPassword([]byte("guest123"), bcrypt.DefaultCost)
	guest := domain.User{
		UserRef:      ident.New(ident.KindUser),
		Name:         "Wanjiku Kamau",
		Email:        "wanjiku@gmail.com",
		Phone:        "+254712345678",
		PasswordHash: string(guestHash),
		Role:         domain.RoleGuest,
	}
	if err := userRepo.Create(ctx, &guest); err != nil {
		log.Fatal(err)
	}
	log.Println("Guest created: wanjiku@gmail.com / guest123")

	partnerHash, _ := bcrypt.GenerateFromPassword([]byte("partner123"), bcrypt.DefaultCost)
	partner := domain.User{
		UserRef:      ident.New(ident.KindUser),
		Name:         "Otieno Odhiambo",
		Email:        "otieno@savannahstays.co.ke",
		Phone:        "+254722000111",
		PasswordHash: string(partnerHash),
		Role:         domain.RolePartner,
	}
	if err := userRepo.Create(ctx, &partner); err != nil {
		log.Fatal(err)
	}
	log.Println("Partner created: otieno@savannahstays.co.ke / partner123")

	// ================== STAFF ==================
	log.Println("Creating operator account...")

	opHash, _ := bcrypt.GenerateFromPassword([]byte("operator123"), bcrypt.DefaultCost)
	operator := domain.StaffAccount{
		UserRef:      ident.New(ident.KindUser),
		Name:         "Platform Operator",
		Email:        "ops@nyumbastay.co.ke",
		PasswordHash: string(opHash),
		// Console role outside the quota-gated admin/manager/editor set.
		Role:         domain.StaffRole("operator"),
		Status:       domain.StaffActive,
		Scope:        domain.ScopeSuperAdmin,
	}
	if err := staffRepo.Create(ctx, &operator); err != nil {
		log.Fatal(err)
	}
	log.Println("Operator created: ops@nyumbastay.co.ke / operator123")

	// ================== ROOMS ==================
	log.Println("Creating rooms...")

	rooms := []domain.Room{
		{
			PropertyID:   1,
			RoomType:     "standard",
			NightlyRate:  5000,
			Capacity:     2,
			ContactPhone: "+254722000111",
			ContactEmail: "frontdesk@savannahstays.co.ke",
			Address:      "Moi Avenue 14, Nairobi",
			MapLink:      "https://maps.example.com/savannah-stays",
		},
		{
			PropertyID:   1,
			RoomType:     "deluxe",
			NightlyRate:  9500,
			Capacity:     3,
			ContactPhone: "+254722000111",
			ContactEmail: "frontdesk@savannahstays.co.ke",
			Address:      "Moi Avenue 14, Nairobi",
			MapLink:      "https://maps.example.com/savannah-stays",
		},
		{
			PropertyID:   2,
			RoomType:     "cottage",
			NightlyRate:  12000,
			Capacity:     4,
			ContactPhone: "+254733444555",
			ContactEmail: "stay@diani-breeze.co.ke",
			Address:      "Diani Beach Road, Kwale",
			MapLink:      "https://maps.example.com/diani-breeze",
		},
	}
	for i := range rooms {
		if err := roomRepo.Create(ctx, &rooms[i]); err != nil {
			log.Fatal(err)
		}
	}

	// ================== RESERVATIONS ==================
	log.Println("Creating demo reservations...")

	checkIn := time.Now().AddDate(0, 0, 7).Truncate(24 * time.Hour)
	checkOut := checkIn.AddDate(0, 0, 3)
	nights := rate.Nights(checkIn, checkOut)

	upcoming := domain.Reservation{
		BookingRef:    ident.New(ident.KindBooking),
		PropertyID:    rooms[0].PropertyID,
		RoomID:        rooms[0].ID,
		UserID:        guest.ID,
		RoomType:      rooms[0].RoomType,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		GuestCount:    2,
		UnitPrice:     rooms[0].NightlyRate,
		TotalAmount:   rate.Total(rooms[0].NightlyRate, nights),
		GuestName:     guest.Name,
		GuestPhone:    guest.Phone,
		GuestEmail:    guest.Email,
		Status:        domain.BookingPending,
		PaymentStatus: domain.PaymentPending,
	}
	if err := reservationRepo.Create(ctx, &upcoming); err != nil {
		log.Fatal(err)
	}
	log.Println("Upcoming reservation:", upcoming.BookingRef)

	pastIn := time.Now().AddDate(0, 0, -10).Truncate(24 * time.Hour)
	pastOut := pastIn.AddDate(0, 0, 2)
	pastNights := rate.Nights(pastIn, pastOut)

	past := domain.Reservation{
		BookingRef:    ident.New(ident.KindBooking),
		PropertyID:    rooms[2].PropertyID,
		RoomID:        rooms[2].ID,
		UserID:        guest.ID,
		RoomType:      rooms[2].RoomType,
		CheckIn:       pastIn,
		CheckOut:      pastOut,
		Nights:        pastNights,
		GuestCount:    2,
		UnitPrice:     rooms[2].NightlyRate,
		TotalAmount:   rate.Total(rooms[2].NightlyRate, pastNights),
		GuestName:     guest.Name,
		GuestPhone:    guest.Phone,
		GuestEmail:    guest.Email,
		Status:        domain.BookingCompleted,
		PaymentStatus: domain.PaymentPaid,
	}
	if err := reservationRepo.Create(ctx, &past); err != nil {
		log.Fatal(err)
	}

	settled := time.Now().AddDate(0, 0, -11)
	paid := domain.Transaction{
		TransactionRef: ident.New(ident.KindTransaction),
		ReservationID:  past.ID,
		BookingRef:     past.BookingRef,
		CheckoutID:     "seed-checkout-1",
		MpesaCode:      "QGH7TX91KL",
		PhoneNumber:    guest.Phone,
		Amount:         past.TotalAmount,
		Status:         domain.TransactionCompleted,
		SettledAt:      &settled,
	}
	if err := transactionRepo.Create(ctx, &paid); err != nil {
		log.Fatal(err)
	}
	log.Println("Past paid reservation:", past.BookingRef, "mpesa:", paid.MpesaCode)

	log.Println("Seed complete.")
}
