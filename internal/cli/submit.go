package cli

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vtoken-labs/vtoken/internal/config"
	"github.com/vtoken-labs/vtoken/internal/core/router"
	"github.com/vtoken-labs/vtoken/internal/core/verification"
	"github.com/vtoken-labs/vtoken/internal/crypto"
	"github.com/vtoken-labs/vtoken/internal/di"
)

var (
	submitDataHex      string
	submitAccountsPath string
)

// submitCmd decodes a single instruction (leading Op discriminator byte
// plus flat op_args, spec.md §4.10) and the account identities it needs,
// then routes it through the wired component graph, printing the Result
// as JSON. Every submission gets a correlation id for the caller to
// thread through its own logs.
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Decode and route a single encoded instruction",
	RunE:  runSubmit,
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVar(&submitDataHex, "data", "", "hex-encoded instruction bytes (discriminator + op_args)")
	submitCmd.Flags().StringVar(&submitAccountsPath, "accounts", "", "path to a JSON file describing the instruction's account identities")
	submitCmd.MarkFlagRequired("data")
	submitCmd.MarkFlagRequired("accounts")
}

// accountsFile mirrors router.Request field-for-field, using hex strings
// in place of crypto.PublicKey so the CLI boundary stays the only place
// that deals in wire/text encodings; the router package itself never
// imports encoding/hex or encoding/json.
type accountsFile struct {
	Mint               string   `json:"mint"`
	ConfigSlotOwner    string   `json:"config_slot_owner"`
	ConfigSlotData     string   `json:"config_slot_data_hex"`
	Signer             string   `json:"signer"`
	InstructionsSysvar string   `json:"instructions_sysvar,omitempty"`
	RemainingAccounts  []string `json:"remaining_accounts,omitempty"`

	Creator   string `json:"creator,omitempty"`
	Dest      string `json:"dest,omitempty"`
	Src       string `json:"src,omitempty"`
	Dst       string `json:"dst,omitempty"`
	Account   string `json:"account,omitempty"`
	Authority string `json:"authority,omitempty"`
	Recipient string `json:"recipient,omitempty"`

	MintFrom     string `json:"mint_from,omitempty"`
	MintTo       string `json:"mint_to,omitempty"`
	CreatorTo    string `json:"creator_to,omitempty"`
	TokenAccount string `json:"token_account,omitempty"`

	EligibleTokenAccount string `json:"eligible_token_account,omitempty"`
	EscrowTokenAccount   string `json:"escrow_token_account,omitempty"`
	ProofAccountAddress  string `json:"proof_account_address,omitempty"`

	HookProgramID string `json:"hook_program_id,omitempty"`
}

func decodeKey(s string) (crypto.PublicKey, error) {
	if s == "" {
		return crypto.PublicKey{}, nil
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return crypto.PublicKey{}, err
	}
	return crypto.NewPublicKey(raw)
}

func decodeOptionalKey(s string) (*crypto.PublicKey, error) {
	if s == "" {
		return nil, nil
	}
	pk, err := decodeKey(s)
	if err != nil {
		return nil, err
	}
	return &pk, nil
}

func (a accountsFile) toRequest() (router.Request, error) {
	var req router.Request
	var err error

	fields := []struct {
		dst *crypto.PublicKey
		src string
	}{
		{&req.Mint, a.Mint},
		{&req.ConfigSlotOwner, a.ConfigSlotOwner},
		{&req.Signer, a.Signer},
		{&req.Creator, a.Creator},
		{&req.Dest, a.Dest},
		{&req.Src, a.Src},
		{&req.Dst, a.Dst},
		{&req.Account, a.Account},
		{&req.Authority, a.Authority},
		{&req.Recipient, a.Recipient},
		{&req.MintFrom, a.MintFrom},
		{&req.MintTo, a.MintTo},
		{&req.CreatorTo, a.CreatorTo},
		{&req.TokenAccount, a.TokenAccount},
		{&req.EligibleTokenAccount, a.EligibleTokenAccount},
	}
	for _, f := range fields {
		if *f.dst, err = decodeKey(f.src); err != nil {
			return router.Request{}, fmt.Errorf("cli: decode account field: %w", err)
		}
	}

	if req.ConfigSlotData, err = decodeOptionalBytes(a.ConfigSlotData); err != nil {
		return router.Request{}, fmt.Errorf("cli: decode config_slot_data_hex: %w", err)
	}
	if req.InstructionsSysvar, err = decodeOptionalKey(a.InstructionsSysvar); err != nil {
		return router.Request{}, fmt.Errorf("cli: decode instructions_sysvar: %w", err)
	}
	if req.EscrowTokenAccount, err = decodeOptionalKey(a.EscrowTokenAccount); err != nil {
		return router.Request{}, fmt.Errorf("cli: decode escrow_token_account: %w", err)
	}
	if req.ProofAccountAddress, err = decodeOptionalKey(a.ProofAccountAddress); err != nil {
		return router.Request{}, fmt.Errorf("cli: decode proof_account_address: %w", err)
	}
	if req.HookProgramID, err = decodeOptionalKey(a.HookProgramID); err != nil {
		return router.Request{}, fmt.Errorf("cli: decode hook_program_id: %w", err)
	}

	req.RemainingAccounts = make([]crypto.PublicKey, len(a.RemainingAccounts))
	for i, s := range a.RemainingAccounts {
		if req.RemainingAccounts[i], err = decodeKey(s); err != nil {
			return router.Request{}, fmt.Errorf("cli: decode remaining_accounts[%d]: %w", i, err)
		}
	}

	// PriorInstructions (introspection-mode verification) is supplied by
	// the embedding deployment's transaction context, not this CLI.
	req.PriorInstructions = []verification.Instruction{}

	return req, nil
}

func decodeOptionalBytes(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	data, err := hex.DecodeString(submitDataHex)
	if err != nil {
		return fmt.Errorf("cli: decode --data: %w", err)
	}

	raw, err := os.ReadFile(submitAccountsPath)
	if err != nil {
		return fmt.Errorf("cli: read --accounts: %w", err)
	}
	var af accountsFile
	if err := json.Unmarshal(raw, &af); err != nil {
		return fmt.Errorf("cli: parse --accounts: %w", err)
	}
	req, err := af.toRequest()
	if err != nil {
		return err
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return fmt.Errorf("cli: load config: %w", err)
	}

	container := di.New()
	provider := di.NewProvider(container, cfg)
	if err := provider.RegisterAll(); err != nil {
		return fmt.Errorf("cli: register services: %w", err)
	}
	r, err := provider.GetRouter()
	if err != nil {
		return fmt.Errorf("cli: wire router: %w", err)
	}

	correlationID := uuid.New().String()
	res, err := r.Route(context.Background(), data, req)
	if err != nil {
		return fmt.Errorf("cli: route (correlation_id=%s): %w", correlationID, err)
	}

	out, err := json.MarshalIndent(struct {
		CorrelationID string        `json:"correlation_id"`
		Result        router.Result `json:"result"`
	}{correlationID, res}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
