package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const defaultAddr = "http://localhost:8080"

func main() {
	exitFn(run(os.Args, os.Stdout, os.Stderr))
}

var exitFn = os.Exit

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	if len(args) < 2 {
		usage(stderr)
		return 2
	}

	switch args[1] {
	case "apply":
		return handleApply(args[2:], stdout, stderr)
	case "plan":
		return handlePlan(args[2:], stdout, stderr)
	case "quote":
		return handleQuote(args[2:], stdout, stderr)
	default:
		usage(stderr)
		return 2
	}
}

func handleApply(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("apply", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOrDefault("KREDIO_ADDR", defaultAddr), "kredio gateway address")
	customer := fs.String("customer", "", "customer id (digits or spoken words)")
	amount := fs.Float64("amount", 0, "desired loan amount")
	term := fs.Int("term", 0, "term in months")
	jsonOut := fs.Bool("json", false, "print raw JSON response")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}
	if *customer == "" || *amount <= 0 || *term <= 0 {
		fmt.Fprintln(stderr, "apply requires --customer, --amount and --term")
		fs.Usage()
		return 2
	}

	body, code := postTool(stderr, *addr, "submitLoanApplication", map[string]any{
		"customer_id": *customer,
		"amount":      *amount,
		"term_months": *term,
	})
	if code != 0 {
		return code
	}
	if *jsonOut {
		_, _ = stdout.Write(body)
		return 0
	}

	var payload struct {
		OK       bool   `json:"ok"`
		Error    string `json:"error"`
		Decision struct {
			Approve        bool     `json:"approve"`
			MonthlyPayment float64  `json:"monthlyPayment"`
			Reasons        []string `json:"reasons"`
		} `json:"decision"`
		CustomerSummary string `json:"customerSummary"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		fmt.Fprintln(stderr, "invalid response:", err)
		return 1
	}
	if !payload.OK {
		fmt.Fprintf(stderr, "apply failed: %s\n", payload.Error)
		return 1
	}

	fmt.Fprintf(stdout, "approve=%t monthly_payment=%.2f reasons=%s\n",
		payload.Decision.Approve, payload.Decision.MonthlyPayment, strings.Join(payload.Decision.Reasons, ";"))
	fmt.Fprintln(stdout, payload.CustomerSummary)
	return 0
}

func handlePlan(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("plan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOrDefault("KREDIO_ADDR", defaultAddr), "kredio gateway address")
	amount := fs.Float64("amount", 0, "loan amount")
	term := fs.Int("term", 0, "term in months")
	rate := fs.Float64("rate", 0, "monthly rate override")
	customer := fs.String("customer", "", "customer id for risk-based rate")
	jsonOut := fs.Bool("json", false, "print raw JSON response")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}
	if *amount <= 0 || *term <= 0 {
		fmt.Fprintln(stderr, "plan requires --amount and --term")
		fs.Usage()
		return 2
	}

	req := map[string]any{"amount": *amount, "term_months": *term}
	if *rate > 0 {
		req["monthly_rate"] = *rate
	}
	if *customer != "" {
		req["customer_id"] = *customer
	}

	body, code := postTool(stderr, *addr, "computeRepaymentPlan", req)
	if code != 0 {
		return code
	}
	if *jsonOut {
		_, _ = stdout.Write(body)
		return 0
	}

	var payload struct {
		OK      bool   `json:"ok"`
		Error   string `json:"error"`
		Summary struct {
			MonthlyPayment float64 `json:"monthlyPayment"`
			TotalInterest  float64 `json:"totalInterest"`
			TotalPayment   float64 `json:"totalPayment"`
			RateMonthly    float64 `json:"rateMonthly"`
		} `json:"summary"`
		Schedule []struct {
			Index     int     `json:"index"`
			Payment   float64 `json:"payment"`
			Principal float64 `json:"principal"`
			Interest  float64 `json:"interest"`
			Balance   float64 `json:"balance"`
		} `json:"schedule"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		fmt.Fprintln(stderr, "invalid response:", err)
		return 1
	}
	if !payload.OK {
		fmt.Fprintf(stderr, "plan failed: %s\n", payload.Error)
		return 1
	}

	fmt.Fprintf(stdout, "rate=%.4f monthly_payment=%.2f total_interest=%.2f total_payment=%.2f\n",
		payload.Summary.RateMonthly, payload.Summary.MonthlyPayment, payload.Summary.TotalInterest, payload.Summary.TotalPayment)
	for _, entry := range payload.Schedule {
		fmt.Fprintf(stdout, "%3d  payment=%10.2f  principal=%10.2f  interest=%9.2f  balance=%11.2f\n",
			entry.Index, entry.Payment, entry.Principal, entry.Interest, entry.Balance)
	}
	return 0
}

func handleQuote(args []string, stdout io.Writer, stderr io.Writer) int {
	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	addr := fs.String("addr", envOrDefault("KREDIO_ADDR", defaultAddr), "kredio gateway address")
	customer := fs.String("customer", "", "customer id")
	loan := fs.String("loan", "", "loan id")
	jsonOut := fs.Bool("json", false, "print raw JSON response")
	if err := fs.Parse(args); err != nil {
		fs.Usage()
		return 2
	}
	if *customer == "" || *loan == "" {
		fmt.Fprintln(stderr, "quote requires --customer and --loan")
		fs.Usage()
		return 2
	}

	body, code := postTool(stderr, *addr, "payoffQuote", map[string]any{
		"customer_id": *customer,
		"loan_id":     *loan,
	})
	if code != 0 {
		return code
	}
	if *jsonOut {
		_, _ = stdout.Write(body)
		return 0
	}

	var payload struct {
		OK           bool    `json:"ok"`
		Error        string  `json:"error"`
		Penalty      float64 `json:"penalty"`
		PayoffAmount float64 `json:"payoffAmount"`
		Note         string  `json:"note"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		fmt.Fprintln(stderr, "invalid response:", err)
		return 1
	}
	if !payload.OK {
		fmt.Fprintf(stderr, "quote failed: %s\n", payload.Error)
		return 1
	}

	fmt.Fprintf(stdout, "penalty=%.2f payoff=%.2f\n", payload.Penalty, payload.PayoffAmount)
	fmt.Fprintln(stdout, payload.Note)
	return 0
}

func postTool(stderr io.Writer, addr string, tool string, args map[string]any) ([]byte, int) {
	reqBody, err := json.Marshal(args)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return nil, 1
	}

	resp, err := http.Post(addr+"/tools/"+tool, "application/json", bytes.NewReader(reqBody))
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return nil, 1
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return nil, 1
	}
	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(stderr, "%s failed: %s\n", tool, strings.TrimSpace(string(body)))
		return nil, 1
	}
	return body, 0
}

func envOrDefault(key string, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

func usage(w io.Writer) {
	fmt.Fprint(w, `Kredio CLI

Usage:
  kredio apply --customer ID --amount N --term N [--addr URL] [--json]
  kredio plan --amount N --term N [--rate R] [--customer ID] [--addr URL] [--json]
  kredio quote --customer ID --loan ID [--addr URL] [--json]
`)
}
