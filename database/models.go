package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"rentdesk/billing"
)

// User represents an account in the system
type User struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:100"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name" gorm:"size:100"`
	FullAddress  string    `json:"full_address" gorm:"size:100"`
	Mobile       string    `json:"mobile" gorm:"size:15"`
	Role         string    `json:"role" gorm:"size:10;default:user"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Tenant represents a rental occupant owned by a user account
type Tenant struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	UserID         uuid.UUID       `json:"user_id" gorm:"type:uuid;index"`
	Name           string          `json:"name" gorm:"size:100"`
	Address        string          `json:"address" gorm:"size:100"`
	Mobile         string          `json:"mobile" gorm:"size:15"`
	Email          string          `json:"email" gorm:"uniqueIndex;size:100"`
	Profession     string          `json:"profession" gorm:"size:100"`
	HouseName      string          `json:"house_name" gorm:"size:100"`
	FlatNumber     string          `json:"flat_number" gorm:"size:10"`
	RoomNumber     string          `json:"room_number" gorm:"size:10"`
	RentAmount     decimal.Decimal `json:"rent_amount" gorm:"type:decimal(10,2)"`
	RentStartDate  string          `json:"rent_start_date" gorm:"size:10"` // YYYY-MM-DD
	PANOrVATNumber string          `json:"pan_or_vat_number" gorm:"size:50"`
	User           User            `json:"user" gorm:"foreignKey:UserID"`
}

func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Invoice represents one rent bill for a tenant covering one rent period.
// TotalAmount and GrandTotal are always computed server-side from the fee
// columns; values submitted by clients are ignored.
type Invoice struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	SerialNumber string    `json:"serial_number" gorm:"uniqueIndex;size:50"`
	TenantID     uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`
	RentMonth    string    `json:"rent_month" gorm:"size:20"`
	IssueDate    time.Time `json:"date"`

	HouseNumber  string `json:"house_number" gorm:"size:20"`
	FlatNumber   string `json:"flat_number" gorm:"size:10"`
	RoomNo       string `json:"room_no" gorm:"size:10"`
	BuildingName string `json:"building_name" gorm:"size:100"`

	RentAmount              decimal.Decimal `json:"rent_amount" gorm:"type:decimal(10,2)"`
	ParkingFee              decimal.Decimal `json:"parking_fee" gorm:"type:decimal(10,2);default:0"`
	ElectricityFee          decimal.Decimal `json:"electricity_fee" gorm:"type:decimal(10,2);default:0"`
	SecurityFee             decimal.Decimal `json:"security_fee" gorm:"type:decimal(10,2);default:0"`
	DrinkingWaterFee        decimal.Decimal `json:"drinking_water_fee" gorm:"type:decimal(10,2);default:0"`
	GeneratorPowerBackupFee decimal.Decimal `json:"generator_power_backup_fee" gorm:"type:decimal(10,2);default:0"`
	NormalWaterFee          decimal.Decimal `json:"normal_water_fee" gorm:"type:decimal(10,2);default:0"`
	InternetTelephoneTVFee  decimal.Decimal `json:"internet_telephone_tv_fee" gorm:"type:decimal(10,2);default:0"`
	WasteFee                decimal.Decimal `json:"waste_fee" gorm:"type:decimal(10,2);default:0"`
	OtherFee                decimal.Decimal `json:"other_fee" gorm:"type:decimal(10,2);default:0"`
	Discount                decimal.Decimal `json:"discount" gorm:"type:decimal(10,2);default:0"`
	Tax                     decimal.Decimal `json:"tax" gorm:"type:decimal(10,2);default:0"`
	PreviousDue             decimal.Decimal `json:"previous_due" gorm:"type:decimal(10,2);default:0"`
	TotalAmount             decimal.Decimal `json:"total_amount" gorm:"type:decimal(10,2)"`
	GrandTotal              decimal.Decimal `json:"grand_total" gorm:"type:decimal(10,2)"`

	Status      string `json:"status" gorm:"size:20;default:unpaid"`
	Signature   string `json:"signature" gorm:"size:100"`
	BankDetails string `json:"bank_details" gorm:"size:200"`

	Tenant Tenant `json:"tenant" gorm:"foreignKey:TenantID"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// FeeSchedule maps the invoice's fee columns into the billing core's
// shape for validation and total computation.
func (i *Invoice) FeeSchedule() billing.FeeSchedule {
	return billing.FeeSchedule{
		RentAmount:              i.RentAmount,
		ParkingFee:              i.ParkingFee,
		ElectricityFee:          i.ElectricityFee,
		SecurityFee:             i.SecurityFee,
		DrinkingWaterFee:        i.DrinkingWaterFee,
		GeneratorPowerBackupFee: i.GeneratorPowerBackupFee,
		NormalWaterFee:          i.NormalWaterFee,
		InternetTelephoneTVFee:  i.InternetTelephoneTVFee,
		WasteFee:                i.WasteFee,
		OtherFee:                i.OtherFee,
		Discount:                i.Discount,
		Tax:                     i.Tax,
		PreviousDue:             i.PreviousDue,
	}
}

// Feedback represents a complaint/review record, optionally anonymous.
// Identity fields are pointers: they are forced to NULL at save time when
// the record is anonymous, regardless of what was submitted.
type Feedback struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	SerialNumber string     `json:"serial_number" gorm:"uniqueIndex;size:50"`
	Name         *string    `json:"name" gorm:"size:100"`
	Address      *string    `json:"address" gorm:"size:200"`
	Mobile       *string    `json:"mobile" gorm:"size:20"`
	Email        *string    `json:"email" gorm:"size:100"`
	Rating       string     `json:"rating" gorm:"size:20"`
	FeedbackText string     `json:"feedback_text"`
	Attachment   string     `json:"attachment" gorm:"size:200"`
	Anonymous    bool       `json:"anonymous" gorm:"default:false"`
	Status       string     `json:"status" gorm:"size:20;default:pending"`
	CreatedByID  *uuid.UUID `json:"created_by" gorm:"type:uuid;index"`
	CreatedBy    *User      `json:"-" gorm:"foreignKey:CreatedByID"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

// Payment records money received against an invoice
type Payment struct {
	ID             uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	UserID         uuid.UUID       `json:"user_id" gorm:"type:uuid;index"`
	InvoiceID      uuid.UUID       `json:"invoice_id" gorm:"type:uuid;index"`
	Amount         decimal.Decimal `json:"amount" gorm:"type:decimal(10,2)"`
	Status         string          `json:"status" gorm:"size:20;default:pending"`
	PaymentMethod  string          `json:"payment_method" gorm:"size:50"`
	TransactionID  string          `json:"transaction_id" gorm:"size:100"`
	PaymentDetails string          `json:"payment_details"`
	Invoice        Invoice         `json:"invoice" gorm:"foreignKey:InvoiceID"`
	User           User            `json:"-" gorm:"foreignKey:UserID"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Notification represents a system notification
type Notification struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	UserID    uuid.UUID  `json:"user_id" gorm:"type:uuid;index"`
	Title     string     `json:"title" gorm:"size:100"`
	Message   string     `json:"message"`
	Type      string     `json:"type" gorm:"size:20"`
	RelatedID *uuid.UUID `json:"related_id" gorm:"type:uuid"`
	IsRead    bool       `json:"is_read" gorm:"default:false"`
	User      User       `json:"-" gorm:"foreignKey:UserID"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

// PasswordResetOTP holds the latest one-time code issued for a user's
// password reset, refreshed in place when a new code is requested.
// Expired rows are not swept; they are rejected when presented.
type PasswordResetOTP struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex"`
	OTP        string    `json:"-" gorm:"size:6"`
	ResetToken string    `json:"-" gorm:"size:64"`
	ExpiresAt  time.Time `json:"expires_at"`
	User       User      `json:"-" gorm:"foreignKey:UserID"`
}

func (o *PasswordResetOTP) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// Constants for roles and payment status values. Invoice and feedback
// status sets live in the billing package.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"

	PaymentStatusPending = "pending"
	PaymentStatusSuccess = "success"
	PaymentStatusFailed  = "failed"
)
