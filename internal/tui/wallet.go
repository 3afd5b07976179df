package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/collectivehq/collective/internal/wallet"
	"github.com/collectivehq/collective/pkg/domain"
)

// topUpAmount is the fixed amount the demo wallet adds per top-up.
const topUpAmount = 50

type topUpDoneMsg struct {
	err error
}

type walletModel struct {
	ledger *wallet.Ledger
	logger *zap.SugaredLogger

	processing bool
	err        string
	height     int
}

func newWalletModel(l *wallet.Ledger, logger *zap.SugaredLogger) walletModel {
	return walletModel{ledger: l, logger: logger}
}

func (m walletModel) Update(msg tea.Msg) (walletModel, tea.Cmd) {
	switch msg := msg.(type) {
	case topUpDoneMsg:
		m.processing = false
		if msg.err != nil {
			m.err = msg.err.Error()
		} else {
			m.err = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.processing {
			return m, nil
		}
		if msg.String() == "t" {
			m.processing = true
			m.err = ""
			ledger := m.ledger
			logger := m.logger
			return m, func() tea.Msg {
				ledger.TopUp(topUpAmount)
				logger.Infow("wallet top-up", "amount", topUpAmount)
				return topUpDoneMsg{}
			}
		}
	}
	return m, nil
}

func (m walletModel) View() string {
	var sb strings.Builder
	sb.WriteString("\n " + metaStyle.Render("balance") + "  " +
		goldStyle.Render(formatAmount(m.ledger.Balance(), m.ledger.Currency())) + "\n")
	if m.processing {
		sb.WriteString(" " + dimStyle.Render("processing top-up...") + "\n")
	}
	if m.err != "" {
		sb.WriteString(" " + errStyle.Render(m.err) + "\n")
	}
	sb.WriteString("\n")

	txs := m.ledger.Transactions()
	if len(txs) == 0 {
		sb.WriteString(" " + dimStyle.Render("no transactions yet") + "\n")
		return sb.String()
	}

	limit := len(txs)
	if m.height > 8 && limit > m.height-8 {
		limit = m.height - 8
	}
	for _, tx := range txs[:limit] {
		sign := "-"
		if tx.Kind != domain.TxPayment {
			sign = "+"
		}
		sb.WriteString(fmt.Sprintf(" %s %s%-6s %-14s %s\n",
			TxStyle(tx.Kind).Render(fmt.Sprintf("%-12s", tx.Kind)),
			sign,
			formatAmount(tx.Amount, tx.Currency),
			metaStyle.Render(tx.Status),
			dimStyle.Render(truncStr(tx.Description, 34)+"  "+formatTime(tx.CreatedAt))))
	}
	return sb.String()
}

func (m walletModel) helpKeys() string {
	return helpEntry("t", fmt.Sprintf("top up +%d", topUpAmount))
}
