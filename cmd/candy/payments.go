package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-bonus/internal/storage"
)

var (
	flagPaymentID    string
	flagPaymentLimit int
)

var paymentsCmd = &cobra.Command{
	Use:   "payments",
	Short: "List Pix payments generated at checkout",
	Long: `Show the most recent Pix payments recorded in the local database,
or a single payment with --id.

Examples:
  candy payments
  candy payments --limit 50
  candy payments --id pay_123`,
	Args: cobra.NoArgs,
	Run:  runPayments,
}

func init() {
	paymentsCmd.Flags().StringVar(&flagPaymentID, "id", "", "Show a single payment")
	paymentsCmd.Flags().IntVar(&flagPaymentLimit, "limit", 20, "Number of payments to list")
}

func runPayments(_ *cobra.Command, _ []string) {
	a, err := newApp(io.Discard)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()
	if a.store == nil {
		a.Close()
		fatal("could not open database %s", flagDBPath)
	}

	var payments []storage.PaymentEntry
	if flagPaymentID != "" {
		p, err := a.store.PaymentByID(flagPaymentID)
		if err != nil {
			a.Close()
			fatal("looking up payment: %v", err)
		}
		if p == nil {
			fmt.Printf("No payment %q recorded.\n", flagPaymentID)
			return
		}
		payments = append(payments, *p)
	} else {
		payments, err = a.store.RecentPayments(flagPaymentLimit)
		if err != nil {
			a.Close()
			fatal("retrieving payments: %v", err)
		}
	}

	if len(payments) == 0 {
		fmt.Println("No payments recorded yet.")
		return
	}

	fmt.Printf("  %-24s  %-6s  %-10s  %-10s  %-28s  %s\n", "Payment", "Flow", "Amount", "Status", "Email", "Date")
	fmt.Printf("  %-24s  %-6s  %-10s  %-10s  %-28s  %s\n", "-------", "----", "------", "------", "-----", "----")
	for _, p := range payments {
		fmt.Printf("  %-24s  %-6s  %-10s  %-10s  %-28s  %s\n",
			p.PaymentID, p.Fluxo, fmt.Sprintf("R$ %.2f", p.Amount), p.Status, p.Email,
			p.CreatedAt.Format("2006-01-02 15:04"))
	}
}
