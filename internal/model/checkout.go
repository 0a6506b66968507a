package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"paypal-checkout-plugin/internal/reference"
)

type User struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"size:64;uniqueIndex;not null"`
	Email     string `gorm:"size:128"`
	FirstName string `gorm:"size:64"`
	LastName  string `gorm:"size:64"`
	CreatedAt time.Time
}

// FullName joins first and last name for the shipping block.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// Basket is an in-progress purchase. It is ephemeral: a successful capture
// converts it into an Order and deletes it.
type Basket struct {
	ID     uint  `gorm:"primaryKey"`
	UserID *uint `gorm:"index"`
	User   *User
	// Extra holds free-form checkout data, e.g. the guest email when no
	// user is attached.
	Extra     datatypes.JSONMap `gorm:"type:json"`
	Items     []BasketItem      `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BasketItem struct {
	ID        uint            `gorm:"primaryKey"`
	BasketID  uint            `gorm:"index;not null"`
	Name      string          `gorm:"size:128;not null"`
	Sku       string          `gorm:"size:64"`
	Quantity  int             `gorm:"not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CreatedAt time.Time
}

// Total sums unit price times quantity over all items.
func (b *Basket) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range b.Items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// GuestEmail returns the email captured in extra data for guest checkouts.
func (b *Basket) GuestEmail() string {
	if email, ok := b.Extra["email"].(string); ok {
		return email
	}
	return ""
}

// LineItem is the uniform item view the outbound request builder consumes,
// regardless of whether it originates from a basket or an order.
type LineItem struct {
	Name      string
	Sku       string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Payable is the thing being paid for: exactly one of Basket or Order is set,
// tagged by Kind. Payment logic switches on the tag, never on the pointers.
type Payable struct {
	Kind   reference.Kind
	Basket *Basket
	Order  *Order
}

func PayableFromBasket(b *Basket) Payable {
	return Payable{Kind: reference.KindBasket, Basket: b}
}

func PayableFromOrder(o *Order) Payable {
	return Payable{Kind: reference.KindOrder, Order: o}
}

// ID returns the local identifier of the tagged entity.
func (p Payable) ID() uint {
	if p.Kind == reference.KindBasket {
		return p.Basket.ID
	}
	return p.Order.ID
}

// Reference encodes this entity's identity for the PayPal purchase unit.
func (p Payable) Reference() string {
	return reference.Encode(p.Kind, p.ID())
}

// Total returns the amount due for the tagged entity.
func (p Payable) Total() decimal.Decimal {
	if p.Kind == reference.KindBasket {
		return p.Basket.Total()
	}
	return p.Order.Total
}

// User returns the registered user, if any.
func (p Payable) User() *User {
	if p.Kind == reference.KindBasket {
		return p.Basket.User
	}
	return p.Order.User
}

// Email returns the guest email used when no registered user is present.
func (p Payable) Email() string {
	if p.Kind == reference.KindBasket {
		return p.Basket.GuestEmail()
	}
	return p.Order.Email
}

// Lines returns the purchasable items as a uniform slice.
func (p Payable) Lines() []LineItem {
	if p.Kind == reference.KindBasket {
		lines := make([]LineItem, len(p.Basket.Items))
		for i, item := range p.Basket.Items {
			lines[i] = LineItem{
				Name:      item.Name,
				Sku:       item.Sku,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			}
		}
		return lines
	}
	lines := make([]LineItem, len(p.Order.Items))
	for i, item := range p.Order.Items {
		lines[i] = LineItem{
			Name:      item.Name,
			Sku:       item.Sku,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return lines
}
