package main

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/shamank/ora-sdk-go/pkg/blockchain"
	"github.com/shamank/ora-sdk-go/pkg/oracle"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the named oracle models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME")
			for _, m := range oracle.Models() {
				fmt.Fprintf(w, "%d\t%s\n", uint64(m), m)
			}
			return w.Flush()
		},
	}
}

func (c *cli) feeCmd() *cobra.Command {
	var model string
	cmd := &cobra.Command{
		Use:   "fee",
		Short: "Estimate the fee the oracle charges for a model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := oracle.ParseModel(model)
			if err != nil {
				return err
			}
			s, cfg, err := c.connect()
			if err != nil {
				return err
			}
			defer s.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.ChainRead)
			defer cancel()
			fee, err := s.ORA().EstimateFee(ctx, m)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s wei (%s ETH)\n", fee, blockchain.WeiToEther(fee))
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", oracle.StableDiffusion.String(), "Model name or id")
	return cmd
}

func (c *cli) resultCmd() *cobra.Command {
	var (
		model, prompt, out string
		content            bool
	)
	cmd := &cobra.Command{
		Use:   "result",
		Short: "Read the stored AI result for a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := oracle.ParseModel(model)
			if err != nil {
				return err
			}
			s, cfg, err := c.connect()
			if err != nil {
				return err
			}
			defer s.Close()

			if !content {
				ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.ChainRead)
				defer cancel()
				result, err := s.ORA().FetchAIResult(ctx, m, prompt)
				if err != nil {
					return err
				}
				if result == "" {
					zap.L().Warn("no result yet", zap.Stringer("model", m), zap.String("prompt", prompt))
				}
				fmt.Fprintln(cmd.OutOrStdout(), result)
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeouts.ChainRead+cfg.Timeouts.StorageRead)
			defer cancel()
			b, err := s.ORA().FetchAIResultContent(ctx, m, prompt)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(b)
				return err
			}
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(b), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", oracle.StableDiffusion.String(), "Model name or id")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt text")
	cmd.Flags().BoolVar(&content, "content", false, "Resolve the result through IPFS/Lighthouse")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write content to this file instead of stdout")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

func (c *cli) requestCmd() *cobra.Command {
	var (
		model, prompt, from, fee string
		wait                     bool
	)
	cmd := &cobra.Command{
		Use:   "request",
		Short: "Pay the oracle to compute a result for a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := oracle.ParseModel(model)
			if err != nil {
				return err
			}
			s, cfg, err := c.connect()
			if err != nil {
				return err
			}
			defer s.Close()

			if from == "" {
				sender, ok := s.Sender()
				if !ok {
					return errors.New("--from is required without a private key")
				}
				from = sender.Hex()
			}

			ora := s.ORA()
			readCtx, cancelRead := context.WithTimeout(cmd.Context(), cfg.Timeouts.ChainRead)
			defer cancelRead()
			value, err := resolveFee(readCtx, ora, m, fee)
			if err != nil {
				return err
			}

			submitCtx, cancelSubmit := context.WithTimeout(cmd.Context(), cfg.Timeouts.ChainSubmit)
			defer cancelSubmit()
			tx, err := ora.CalculateAIResult(submitCtx, from, m, prompt, value)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "tx %s\n", tx.Hash.Hex())
			if !wait {
				return nil
			}

			waitCtx, cancelWait := context.WithTimeout(cmd.Context(), cfg.Timeouts.ReceiptWait)
			defer cancelWait()
			receipt, err := tx.Wait(waitCtx)
			if err != nil {
				return err
			}
			req, err := ora.ParsePromptRequest(receipt)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "request %s mined in block %d\n", req.RequestID, receipt.BlockNumber.Uint64())
			return nil
		},
	}
	cmd.Flags().StringVarP(&model, "model", "m", oracle.StableDiffusion.String(), "Model name or id")
	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "Prompt text")
	cmd.Flags().StringVar(&from, "from", "", "Paying account (default: the private key's address)")
	cmd.Flags().StringVar(&fee, "fee", "", "Fee in ETH (default: estimateFee)")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait for the transaction receipt")
	_ = cmd.MarkFlagRequired("prompt")
	return cmd
}

// feeEstimator is the part of the oracle client resolveFee needs.
type feeEstimator interface {
	EstimateFee(ctx context.Context, model oracle.Model) (*big.Int, error)
}

// resolveFee parses an explicit ETH amount or asks the oracle for the fee.
func resolveFee(ctx context.Context, ora feeEstimator, m oracle.Model, fee string) (*big.Int, error) {
	if fee == "" {
		return ora.EstimateFee(ctx, m)
	}
	wei, err := blockchain.EtherToWei(fee)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid fee %q", fee)
	}
	if wei.Sign() < 0 {
		return nil, errors.Errorf("fee must not be negative: %s", fee)
	}
	return wei, nil
}
