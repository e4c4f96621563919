package billing

import "github.com/shopspring/decimal"

// FeeSchedule holds the charge line items of one rent invoice. Every fee
// other than RentAmount is optional and defaults to zero. All values are
// decimal money with 2 fraction digits; floats are never used for fees.
type FeeSchedule struct {
	RentAmount              decimal.Decimal `json:"rent_amount"`
	ParkingFee              decimal.Decimal `json:"parking_fee"`
	ElectricityFee          decimal.Decimal `json:"electricity_fee"`
	SecurityFee             decimal.Decimal `json:"security_fee"`
	DrinkingWaterFee        decimal.Decimal `json:"drinking_water_fee"`
	GeneratorPowerBackupFee decimal.Decimal `json:"generator_power_backup_fee"`
	NormalWaterFee          decimal.Decimal `json:"normal_water_fee"`
	InternetTelephoneTVFee  decimal.Decimal `json:"internet_telephone_tv_fee"`
	WasteFee                decimal.Decimal `json:"waste_fee"`
	OtherFee                decimal.Decimal `json:"other_fee"`

	// Discount is subtracted from the grand total, Tax and PreviousDue are
	// added. None of the three count toward TotalAmount.
	Discount    decimal.Decimal `json:"discount"`
	Tax         decimal.Decimal `json:"tax"`
	PreviousDue decimal.Decimal `json:"previous_due"`
}

// feeFields lists the optional fee line items in display order, paired
// with their field names for validation messages.
func (fs FeeSchedule) feeFields() []struct {
	Name  string
	Value decimal.Decimal
} {
	return []struct {
		Name  string
		Value decimal.Decimal
	}{
		{"parking_fee", fs.ParkingFee},
		{"electricity_fee", fs.ElectricityFee},
		{"security_fee", fs.SecurityFee},
		{"drinking_water_fee", fs.DrinkingWaterFee},
		{"generator_power_backup_fee", fs.GeneratorPowerBackupFee},
		{"normal_water_fee", fs.NormalWaterFee},
		{"internet_telephone_tv_fee", fs.InternetTelephoneTVFee},
		{"waste_fee", fs.WasteFee},
		{"other_fee", fs.OtherFee},
	}
}
