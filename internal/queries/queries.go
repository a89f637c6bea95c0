package queries

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/transaction"
	"fintrack/internal/user"
	"fintrack/logging"
)

const (
	entityBalance      = "balance"
	entityTransactions = "transactions"

	balanceTTL      = 5 * time.Minute
	transactionsTTL = 30 * time.Second
)

// ErrDisabled means a query's preconditions are not met (no session user, or
// a partial date range). Disabled queries never reach the network.
var ErrDisabled = errors.New("query disabled: missing user or incomplete date range")

// SessionInfo exposes the current session user to the query layer.
type SessionInfo interface {
	User() (user.User, bool)
}

type UserAPI interface {
	Balance(ctx context.Context, from, to string) (user.Balance, error)
}

type TransactionAPI interface {
	List(ctx context.Context, from, to string) ([]transaction.Transaction, error)
	Create(ctx context.Context, input transaction.CreateInput) (transaction.Transaction, error)
	Update(ctx context.Context, input transaction.UpdateInput) (transaction.Transaction, error)
}

// Client is the cached query/mutation layer. Reads go through the cache,
// writes invalidate the acting user's balance and transaction-list keys
// after the server confirms success, never before.
type Client struct {
	session      SessionInfo
	users        UserAPI
	transactions TransactionAPI

	balances *cache.Store[user.Balance]
	txLists  *cache.Store[[]transaction.Transaction]
}

func New(session SessionInfo, users UserAPI, transactions TransactionAPI) *Client {
	return &Client{
		session:      session,
		users:        users,
		transactions: transactions,
		balances:     cache.NewStore[user.Balance](balanceTTL),
		txLists:      cache.NewStore[[]transaction.Transaction](transactionsTTL),
	}
}

func (c *Client) Balance(ctx context.Context, from, to string) (user.Balance, error) {
	current, ok := c.enabled(from, to)
	if !ok {
		return user.Balance{}, ErrDisabled
	}

	key := cache.NewKey(entityBalance, current.ID, from, to)
	if balance, hit := c.balances.Get(key); hit {
		return balance, nil
	}

	balance, err := c.users.Balance(ctx, from, to)
	if err != nil {
		return user.Balance{}, err
	}
	c.balances.Set(key, balance)
	return balance, nil
}

func (c *Client) Transactions(ctx context.Context, from, to string) ([]transaction.Transaction, error) {
	current, ok := c.enabled(from, to)
	if !ok {
		return nil, ErrDisabled
	}

	key := cache.NewKey(entityTransactions, current.ID, from, to)
	if transactions, hit := c.txLists.Get(key); hit {
		return transactions, nil
	}

	transactions, err := c.transactions.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	c.txLists.Set(key, transactions)
	return transactions, nil
}

func (c *Client) CreateTransaction(ctx context.Context, input transaction.CreateInput) (transaction.Transaction, error) {
	if err := input.ValidateFields(); err != nil {
		return transaction.Transaction{}, err
	}

	created, err := c.transactions.Create(ctx, input)
	if err != nil {
		return transaction.Transaction{}, err
	}
	c.invalidateUserEntries()
	return created, nil
}

func (c *Client) UpdateTransaction(ctx context.Context, input transaction.UpdateInput) (transaction.Transaction, error) {
	if err := input.ValidateFields(); err != nil {
		return transaction.Transaction{}, err
	}

	updated, err := c.transactions.Update(ctx, input)
	if err != nil {
		return transaction.Transaction{}, err
	}
	c.invalidateUserEntries()
	return updated, nil
}

func (c *Client) enabled(from, to string) (user.User, bool) {
	current, ok := c.session.User()
	if !ok {
		return user.User{}, false
	}
	if from == "" || to == "" {
		return user.User{}, false
	}
	return current, true
}

func (c *Client) invalidateUserEntries() {
	current, ok := c.session.User()
	if !ok {
		return
	}
	marked := c.balances.Invalidate(cache.NewKey(entityBalance, current.ID, "", ""))
	marked += c.txLists.Invalidate(cache.NewKey(entityTransactions, current.ID, "", ""))
	logging.Logger.Debugf("invalidated %d cache entries for user %s", marked, current.ID)
}
