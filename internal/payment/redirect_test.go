package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyRedirectURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want RedirectResult
	}{
		{
			name: "success with order id",
			url:  "https://api.backhomebarber.com/payment-success?orderId=5O190127TN364715T",
			want: RedirectResult{Kind: RedirectSuccess, OrderID: "5O190127TN364715T"},
		},
		{
			name: "success without order id",
			url:  "https://api.backhomebarber.com/payment-success",
			want: RedirectResult{Kind: RedirectSuccess},
		},
		{
			name: "cancel",
			url:  "https://api.backhomebarber.com/payment-cancel",
			want: RedirectResult{Kind: RedirectCancel},
		},
		{
			name: "intermediate paypal redirect",
			url:  "https://www.sandbox.paypal.com/checkoutnow?token=ABC123",
			want: RedirectResult{Kind: RedirectNone},
		},
		{
			name: "paypal login page",
			url:  "https://www.sandbox.paypal.com/signin",
			want: RedirectResult{Kind: RedirectNone},
		},
		{
			name: "empty url",
			url:  "",
			want: RedirectResult{Kind: RedirectNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyRedirectURL(tt.url))
		})
	}
}
