package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	portssvc "github.com/SscSPs/backoffice/internal/core/ports/services"
)

func newVoucherNumberCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "voucher-number PREFIX",
		Short: "Preview the next voucher number of a series (KK, KTMC, ...)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				number, err := svc.VoucherNumber.NextVoucherNumber(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), number)
				return nil
			})
		},
	}
}

func newVerifyBalancesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify-balances",
		Short: "Compare stored account balances with the posted journal lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				drifts, err := svc.Journal.VerifyBalances(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(drifts) == 0 {
					fmt.Fprintln(out, "all balances consistent")
					return nil
				}
				for _, d := range drifts {
					fmt.Fprintf(out, "%s\tstored=%s\texpected=%s\n", d.AccountCode, d.Stored.String(), d.Expected.String())
				}
				return fmt.Errorf("%d account(s) drifted", len(drifts))
			})
		},
	}
}

func newReverseEntryCommand() *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "reverse-entry ID",
		Short: "Reverse a posted journal entry and create its draft mirror",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withServices(cmd.Context(), func(svc *portssvc.ServiceContainer) error {
				newID, err := svc.Journal.ReverseEntry(cmd.Context(), args[0], reason, operator())
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), newID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "cancel reason recorded on the reversed entry (required)")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}
