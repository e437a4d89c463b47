package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/tally/internal/dates"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/validation"
	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"
)

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	// An opening tag alone on its line with no closing bracket.
	tagFixRegex = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	// Characters the ledger rejects in descriptions.
	unsafeChars = strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")
)

// Entry is one statement line converted for the ledger.
type Entry struct {
	Date        time.Time
	Amount      decimal.Decimal
	Type        model.TransactionType
	Description string
	FITID       string
	AccountID   string
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be INFO, WARN or ERROR.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// ParseFile parses an OFX/QFX file and returns its entries in statement order.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]Entry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []Entry
	var bankStmts, ccStmts, skipped int

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		bankStmts++
		converted, n := p.convertAll(stmt.BankTranList.Transactions, string(stmt.BankAcctFrom.AcctID))
		entries = append(entries, converted...)
		skipped += n
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		ccStmts++
		converted, n := p.convertAll(stmt.BankTranList.Transactions, string(stmt.CCAcctFrom.AcctID))
		entries = append(entries, converted...)
		skipped += n
	}

	slog.Info("Parsed OFX file",
		"entries", len(entries),
		"skipped", skipped,
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

func (p *Parser) convertAll(txns []ofxgo.Transaction, accountID string) ([]Entry, int) {
	entries := make([]Entry, 0, len(txns))
	skipped := 0
	for _, ofxTx := range txns {
		entry, err := p.convertTransaction(ofxTx, accountID)
		if err != nil {
			slog.Warn("Skipping OFX transaction",
				"account", accountID,
				"fitid", ofxTx.FiTID,
				"error", err)
			skipped++
			continue
		}
		entries = append(entries, entry)
	}
	return entries, skipped
}

// convertTransaction maps an OFX transaction to an Entry. OFX amounts are
// signed: debits become expenses and credits become income.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (Entry, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return Entry{}, fmt.Errorf("invalid amount: %w", err)
	}
	if amount.IsZero() {
		return Entry{}, fmt.Errorf("zero amount")
	}

	typ := model.TransactionTypeIncome
	if amount.IsNegative() {
		typ = model.TransactionTypeExpense
	}

	return Entry{
		Date:        dates.Day(ofxTx.DtPosted.Time),
		Amount:      amount.Abs(),
		Type:        typ,
		Description: p.description(ofxTx),
		FITID:       string(ofxTx.FiTID),
		AccountID:   accountID,
	}, nil
}

// description picks the cleanest payee text available and makes it safe to
// store as a ledger description.
func (p *Parser) description(tx ofxgo.Transaction) string {
	name := extractPayee(tx)
	name = unsafeChars.Replace(validation.Sanitize(name))
	if utf8.RuneCountInString(name) > validation.MaxDescriptionLength {
		name = string([]rune(name)[:validation.MaxDescriptionLength])
	}
	return strings.TrimSpace(name)
}

func extractPayee(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && (name == "" || isGenericDescription(name)) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " left over from card processors.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "DEBIT", "CREDIT", "DEPOSIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}

// GetAccounts extracts unique account IDs from the OFX file.
func (p *Parser) GetAccounts(ctx context.Context, reader io.Reader) ([]string, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	seen := make(map[string]bool)
	var accounts []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			accounts = append(accounts, id)
		}
	}

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			add(string(stmt.BankAcctFrom.AcctID))
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			add(string(stmt.CCAcctFrom.AcctID))
		}
	}

	return accounts, nil
}
