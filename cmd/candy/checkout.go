package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/candy-bonus/internal/checkout"
)

var (
	flagFluxo string
	flagName  string
	flagEmail string
	flagQROut string
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Generate a Pix payment",
	Long: `Ask the payment backend for a Pix payment without opening the game.

The flow picks the offer: "vsl" is the main offer, "popup" the discounted
last-chance offer shown after a round. With --qr-out the QR code image is
written as a PNG.

Examples:
  candy checkout --name "Maria Silva" --email maria@example.com
  candy checkout --fluxo vsl --name Ana --email ana@example.com --qr-out pix.png
  candy checkout --api-url https://pay.example.com ...`,
	Args: cobra.NoArgs,
	Run:  runCheckout,
}

func init() {
	checkoutCmd.Flags().StringVar(&flagFluxo, "fluxo", "", "Checkout flow: vsl or popup (default from config)")
	checkoutCmd.Flags().StringVar(&flagName, "name", "", "Payer name")
	checkoutCmd.Flags().StringVar(&flagEmail, "email", "", "Payer email")
	checkoutCmd.Flags().StringVar(&flagQROut, "qr-out", "", "Write the QR code PNG to this file")
}

func runCheckout(_ *cobra.Command, _ []string) {
	a, err := newApp(os.Stderr)
	if err != nil {
		fatal("%v", err)
	}
	defer a.Close()

	fluxo := flagFluxo
	if fluxo == "" {
		fluxo = a.cfg.Checkout.DefaultFlow
	}
	flow, err := checkout.ParseFlow(fluxo)
	if err != nil {
		a.Close()
		fatal("%v", err)
	}
	offer, err := checkout.OfferFor(flow)
	if err != nil {
		a.Close()
		fatal("%v", err)
	}

	req := checkout.Request{Name: flagName, Email: flagEmail, Fluxo: flow}
	payment, err := a.client.CreatePix(context.Background(), req)
	if err != nil {
		a.Close()
		fatal("%v", err)
	}

	fmt.Printf("%s\n\n", offer.Description)
	fmt.Printf("Payment:  %s\n", payment.PaymentID)
	fmt.Printf("Amount:   R$ %.2f\n", payment.Amount)
	fmt.Printf("Status:   %s\n", payment.Status)
	if payment.PaymentURL != "" {
		fmt.Printf("Pay at:   %s\n", payment.PaymentURL)
	}
	fmt.Printf("\nPix copy-paste code:\n%s\n", payment.QRCode)

	if flagQROut == "" {
		return
	}
	img, err := payment.QRImage()
	if err != nil {
		a.Close()
		fatal("%v", err)
	}
	if err := os.WriteFile(flagQROut, img, 0o644); err != nil {
		a.Close()
		fatal("writing QR code: %v", err)
	}
	fmt.Printf("\nQR code written to %s\n", flagQROut)
}
