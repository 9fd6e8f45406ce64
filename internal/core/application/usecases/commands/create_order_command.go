package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a request to register a new delivery order
// with a cash-on-delivery amount.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand("ORD-1042", "Amira Khalil", "+20100000000", "12 Nile St, Giza", 35000)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock)
//	created, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	reference     string
	customerName  string
	customerPhone string
	address       string
	cashDue       kernel.Money

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new delivery order.
// Validates that reference, customer name, and address are present and the
// cash-due amount is not negative.
func NewCreateOrderCommand(
	reference string,
	customerName string,
	customerPhone string,
	address string,
	cashDueAmount int64,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setReference(reference),
		orderCommand.setCustomer(customerName, customerPhone, address),
		orderCommand.setCashDue(cashDueAmount),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// Reference returns the human-readable order code.
func (c CreateOrderCommand) Reference() string {
	return c.reference
}

// CustomerName returns the recipient's name.
func (c CreateOrderCommand) CustomerName() string {
	return c.customerName
}

// CustomerPhone returns the recipient's phone number.
func (c CreateOrderCommand) CustomerPhone() string {
	return c.customerPhone
}

// Address returns the delivery address.
func (c CreateOrderCommand) Address() string {
	return c.address
}

// CashDue returns the cash-on-delivery amount.
func (c CreateOrderCommand) CashDue() kernel.Money {
	return c.cashDue
}

func (c *CreateOrderCommand) setReference(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}

	c.reference = reference
	return nil
}

func (c *CreateOrderCommand) setCustomer(name, phone, address string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("customerName")
	}
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}

	c.customerName = name
	c.customerPhone = phone
	c.address = address
	return nil
}

func (c *CreateOrderCommand) setCashDue(amount int64) error {
	cashDue, err := kernel.NewMoney(amount)
	if err != nil {
		return err
	}

	c.cashDue = cashDue
	return nil
}
