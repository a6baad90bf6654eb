package models

import "testing"

func TestNewOrderDraft(t *testing.T) {
	event := &Event{
		ID:           "ev-1",
		Title:        "Anime Festival Jakarta",
		Price:        60000,
		CurrentPrice: 50000,
	}

	tests := []struct {
		name         string
		quantity     int
		wantQuantity int
		wantTotal    int
	}{
		{
			name:         "single ticket",
			quantity:     1,
			wantQuantity: 1,
			wantTotal:    50000,
		},
		{
			name:         "multiple tickets",
			quantity:     3,
			wantQuantity: 3,
			wantTotal:    150000,
		},
		{
			name:         "zero quantity clamps to one",
			quantity:     0,
			wantQuantity: 1,
			wantTotal:    50000,
		},
		{
			name:         "negative quantity clamps to one",
			quantity:     -5,
			wantQuantity: 1,
			wantTotal:    50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := NewOrderDraft(event, tt.quantity)
			if draft.Quantity != tt.wantQuantity {
				t.Errorf("NewOrderDraft() quantity = %d, want %d", draft.Quantity, tt.wantQuantity)
			}
			if draft.TotalPrice != tt.wantTotal {
				t.Errorf("NewOrderDraft() total = %d, want %d", draft.TotalPrice, tt.wantTotal)
			}
			if draft.UnitPrice != event.CurrentPrice {
				t.Errorf("NewOrderDraft() unit price = %d, want current price %d", draft.UnitPrice, event.CurrentPrice)
			}
			if err := draft.Validate(); err != nil {
				t.Errorf("NewOrderDraft() produced invalid draft: %v", err)
			}
		})
	}
}

func TestNewOrderDraft_UsesCurrentPrice(t *testing.T) {
	event := &Event{
		ID:                "ev-2",
		Title:             "Anisong Night",
		Price:             100000,
		CurrentPrice:      75000,
		IsEarlyBirdActive: true,
	}

	draft := NewOrderDraft(event, 2)
	if draft.UnitPrice != 75000 {
		t.Errorf("draft unit price = %d, want early bird price 75000", draft.UnitPrice)
	}
	if draft.TotalPrice != 150000 {
		t.Errorf("draft total = %d, want 150000", draft.TotalPrice)
	}
}

func TestNewOrderDraft_MintsAttemptID(t *testing.T) {
	event := &Event{ID: "ev-1", Title: "Anime Festival Jakarta", CurrentPrice: 50000}

	first := NewOrderDraft(event, 1)
	second := NewOrderDraft(event, 1)

	if first.AttemptID == "" {
		t.Fatal("draft has no attempt id")
	}
	if first.AttemptID == second.AttemptID {
		t.Errorf("separate drafts share attempt id %q", first.AttemptID)
	}
}

func TestOrderDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		draft   OrderDraft
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid draft",
			draft: OrderDraft{
				EventID:    "ev-1",
				EventTitle: "Anime Festival Jakarta",
				Quantity:   2,
				UnitPrice:  50000,
				TotalPrice: 100000,
			},
			wantErr: false,
		},
		{
			name: "free event is valid",
			draft: OrderDraft{
				EventID:    "ev-1",
				Quantity:   4,
				UnitPrice:  0,
				TotalPrice: 0,
			},
			wantErr: false,
		},
		{
			name: "missing event id",
			draft: OrderDraft{
				Quantity:   1,
				UnitPrice:  50000,
				TotalPrice: 50000,
			},
			wantErr: true,
			errMsg:  "draft event id is required",
		},
		{
			name: "quantity below one",
			draft: OrderDraft{
				EventID:    "ev-1",
				Quantity:   0,
				UnitPrice:  50000,
				TotalPrice: 0,
			},
			wantErr: true,
			errMsg:  "draft quantity must be at least 1",
		},
		{
			name: "negative unit price",
			draft: OrderDraft{
				EventID:    "ev-1",
				Quantity:   1,
				UnitPrice:  -100,
				TotalPrice: -100,
			},
			wantErr: true,
			errMsg:  "draft unit price cannot be negative",
		},
		{
			name: "total does not match",
			draft: OrderDraft{
				EventID:    "ev-1",
				Quantity:   2,
				UnitPrice:  50000,
				TotalPrice: 50000,
			},
			wantErr: true,
			errMsg:  "draft total price does not match unit price and quantity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("OrderDraft.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("OrderDraft.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestCustomerInfo_Validate(t *testing.T) {
	tests := []struct {
		name    string
		info    CustomerInfo
		wantErr bool
		errMsg  string
	}{
		{
			name: "all required fields present",
			info: CustomerInfo{
				Name:  "Rina Aulia",
				Email: "rina@example.com",
				Phone: "081234567890",
			},
			wantErr: false,
		},
		{
			name: "notes are optional",
			info: CustomerInfo{
				Name:  "Rina Aulia",
				Email: "rina@example.com",
				Phone: "081234567890",
				Notes: "",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			info: CustomerInfo{
				Email: "rina@example.com",
				Phone: "081234567890",
			},
			wantErr: true,
			errMsg:  "customer name is required",
		},
		{
			name: "whitespace-only name",
			info: CustomerInfo{
				Name:  "   ",
				Email: "rina@example.com",
				Phone: "081234567890",
			},
			wantErr: true,
			errMsg:  "customer name is required",
		},
		{
			name: "missing email",
			info: CustomerInfo{
				Name:  "Rina Aulia",
				Phone: "081234567890",
			},
			wantErr: true,
			errMsg:  "customer email is required",
		},
		{
			name: "missing phone",
			info: CustomerInfo{
				Name:  "Rina Aulia",
				Email: "rina@example.com",
			},
			wantErr: true,
			errMsg:  "customer phone is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.info.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("CustomerInfo.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err.Error() != tt.errMsg {
				t.Errorf("CustomerInfo.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PaymentGopay, PaymentOvo, PaymentDana, PaymentBankTransfer} {
		if !ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = false, want true", m)
		}
	}
	if ValidPaymentMethod("credit_card") {
		t.Error("ValidPaymentMethod(credit_card) = true, want false")
	}
	if ValidPaymentMethod("") {
		t.Error("ValidPaymentMethod(empty) = true, want false")
	}
}
