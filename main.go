package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/crypto/ssh/terminal"

	"fintrack/internal/config"
	"fintrack/internal/httpclient"
	"fintrack/internal/queries"
	"fintrack/internal/session"
	"fintrack/internal/tokenstore"
	"fintrack/internal/transaction"
	"fintrack/internal/user"
	"fintrack/logging"
)

const usage = `fintrack - personal finance tracking client

Usage:
  fintrack <command> [options]

Commands:
  signup     Create an account (prompts for password)
  login      Log in (prompts for password)
  logout     Log out and forget stored tokens
  me         Show the logged-in user
  balance    Show the balance summary for a date range
  tx list    List transactions for a date range
  tx add     Create a transaction
  tx edit    Edit a transaction

Examples:
  fintrack signup --first-name=John --last-name=Doe --email=john@doe.com
  fintrack login --email=john@doe.com
  fintrack balance --from=2024-01-01 --to=2024-01-31
  fintrack tx list
  fintrack tx add --name=Salary --amount=5000 --type=EARNING --date=2024-01-05
  fintrack tx edit --id=<id> --name=Salary --amount=5500 --type=EARNING --date=2024-01-05

Dates use the 2006-01-02 format. When --from and --to are both omitted the
current month is used.
`

type app struct {
	session *session.Session
	queries *queries.Client
}

func main() {
	if len(os.Args) < 2 || os.Args[1] == "help" || os.Args[1] == "-h" || os.Args[1] == "--help" {
		fmt.Print(usage)
		os.Exit(2)
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fatal(err)
	}
	if err := logging.Init(cfg.LogLevel); err != nil {
		fatal(err)
	}

	store := tokenstore.NewFileStore(cfg.TokenFile)
	client, err := httpclient.New(httpclient.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
		Tokens:  store,
	})
	if err != nil {
		fatal(err)
	}

	users := user.NewService(client)
	transactions := transaction.NewService(client)
	sess := session.New(store, users)

	application := &app{
		session: sess,
		queries: queries.New(sess, users, transactions),
	}

	ctx := context.Background()
	sess.Validate(ctx)

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "signup":
		err = application.runSignup(ctx, args)
	case "login":
		err = application.runLogin(ctx, args)
	case "logout":
		sess.Logout()
		fmt.Println("Logged out.")
	case "me":
		err = application.runMe()
	case "balance":
		err = application.runBalance(ctx, args)
	case "tx":
		err = application.runTransaction(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		os.Exit(2)
	}
	if err != nil {
		fatal(err)
	}
}

func (a *app) runSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	firstName := fs.String("first-name", "", "first name")
	lastName := fs.String("last-name", "", "last name")
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}
	confirmation, err := promptPassword("Confirm password: ")
	if err != nil {
		return err
	}
	if password != confirmation {
		return fmt.Errorf("passwords do not match")
	}

	created, err := a.session.Signup(ctx, user.SignupInput{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  password,
	})
	if err != nil {
		return fmt.Errorf("signup failed: %w", err)
	}
	fmt.Printf("Account created, welcome %s %s!\n", created.FirstName, created.LastName)
	return nil
}

func (a *app) runLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	password, err := promptPassword("Password: ")
	if err != nil {
		return err
	}

	logged, err := a.session.Login(ctx, user.LoginInput{
		Email:    *email,
		Password: password,
	})
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	fmt.Printf("Logged in as %s %s <%s>\n", logged.FirstName, logged.LastName, logged.Email)
	return nil
}

func (a *app) runMe() error {
	current, ok := a.session.User()
	if !ok {
		return fmt.Errorf("not logged in, run 'fintrack login' first")
	}
	fmt.Printf("%s %s <%s> (id: %s)\n", current.FirstName, current.LastName, current.Email, current.ID)
	return nil
}

func (a *app) runBalance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	from := fs.String("from", "", "range start (2006-01-02)")
	to := fs.String("to", "", "range end (2006-01-02)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fillDefaultRange(from, to)

	balance, err := a.queries.Balance(ctx, *from, *to)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Balance:\t%s\n", balance.Balance)
	fmt.Fprintf(w, "Earnings:\t%s\t(%s%%)\n", balance.Earnings, balance.EarningsPercentage)
	fmt.Fprintf(w, "Expenses:\t%s\t(%s%%)\n", balance.Expenses, balance.ExpensesPercentage)
	fmt.Fprintf(w, "Investments:\t%s\t(%s%%)\n", balance.Investments, balance.InvestmentsPercentage)
	return w.Flush()
}

func (a *app) runTransaction(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("missing tx subcommand, want: list, add or edit")
	}

	switch args[0] {
	case "list":
		return a.runTransactionList(ctx, args[1:])
	case "add":
		return a.runTransactionAdd(ctx, args[1:])
	case "edit":
		return a.runTransactionEdit(ctx, args[1:])
	default:
		return fmt.Errorf("unknown tx subcommand: %s", args[0])
	}
}

func (a *app) runTransactionList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx list", flag.ExitOnError)
	from := fs.String("from", "", "range start (2006-01-02)")
	to := fs.String("to", "", "range end (2006-01-02)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fillDefaultRange(from, to)

	transactions, err := a.queries.Transactions(ctx, *from, *to)
	if err != nil {
		return err
	}
	if len(transactions) == 0 {
		fmt.Printf("No transactions between %s and %s.\n", *from, *to)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tNAME\tTYPE\tAMOUNT")
	for _, t := range transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Date, t.Name, t.Type, t.Amount)
	}
	return w.Flush()
}

func (a *app) runTransactionAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx add", flag.ExitOnError)
	name := fs.String("name", "", "transaction name")
	amount := fs.String("amount", "", "amount (decimal)")
	transactionType := fs.String("type", "", "EARNING, EXPENSE or INVESTMENT")
	date := fs.String("date", "", "date (2006-01-02)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	created, err := a.queries.CreateTransaction(ctx, transaction.CreateInput{
		Name:   *name,
		Date:   *date,
		Type:   transaction.Type(strings.ToUpper(*transactionType)),
		Amount: *amount,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Created transaction %s: %s %s (%s)\n", created.ID, created.Name, created.Amount, created.Type)
	return nil
}

func (a *app) runTransactionEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tx edit", flag.ExitOnError)
	id := fs.String("id", "", "transaction id")
	name := fs.String("name", "", "transaction name")
	amount := fs.String("amount", "", "amount (decimal)")
	transactionType := fs.String("type", "", "EARNING, EXPENSE or INVESTMENT")
	date := fs.String("date", "", "date (2006-01-02)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	updated, err := a.queries.UpdateTransaction(ctx, transaction.UpdateInput{
		ID:     *id,
		Name:   *name,
		Date:   *date,
		Type:   transaction.Type(strings.ToUpper(*transactionType)),
		Amount: *amount,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Updated transaction %s: %s %s (%s)\n", updated.ID, updated.Name, updated.Amount, updated.Type)
	return nil
}

// fillDefaultRange sets both dates to the current month when neither is
// given. A single missing boundary is left alone so the query layer rejects
// the partial range.
func fillDefaultRange(from, to *string) {
	if *from != "" || *to != "" {
		return
	}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)
	*from = monthStart.Format(transaction.DATE_LAYOUT)
	*to = monthEnd.Format(transaction.DATE_LAYOUT)
}

func promptPassword(label string) (string, error) {
	fmt.Fprint(os.Stderr, label)

	fd := int(os.Stdin.Fd())
	if terminal.IsTerminal(fd) {
		password, err := terminal.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	// Piped stdin, read a plain line.
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return "", fmt.Errorf("no password given")
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
