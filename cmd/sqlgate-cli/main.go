package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sqlgate/sqlgate"
	"github.com/sqlgate/sqlgate/db"
	"github.com/sqlgate/sqlgate/types"
)

const (
	PromptColor  = "\033[36m" // Cyan
	ErrorColor   = "\033[31m" // Red
	SuccessColor = "\033[32m" // Green
	ResetColor   = "\033[0m"
	BoldColor    = "\033[1m"
)

// Version is set at build time via -ldflags
var Version = "dev"

// CLI holds the CLI state
type CLI struct {
	conn        *db.Connection
	history     []string
	historyFile string
}

func main() {
	dbType := flag.String("type", envOr("SQLGATE_TYPE", "mysql"), "Database type: mysql, postgres, duckdb")
	username := flag.String("user", envOr("SQLGATE_USER", ""), "Database user")
	password := flag.String("password", envOr("SQLGATE_PASSWORD", ""), "Database password")
	hostname := flag.String("host", envOr("SQLGATE_HOST", "localhost"), "Database host")
	port := flag.Uint("port", envPortOr("SQLGATE_PORT", 0), "Database port (0 = dialect default)")
	database := flag.String("database", envOr("SQLGATE_DATABASE", ""), "Database name (file path for duckdb)")
	useTLS := flag.String("tls", envOr("SQLGATE_TLS", ""), "TLS: true, false, or empty for the driver default")
	sqlFile := flag.String("sqlFile", "", "SQL file to execute (non-interactive)")
	flag.Parse()

	settings, err := buildSettings(*dbType, *username, *password, *hostname, *port, *database, *useTLS)
	if err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		os.Exit(1)
	}

	printBanner()

	conn := sqlgate.Open(settings)
	fmt.Printf("%sConnecting to %s at %s:%d...%s\n",
		SuccessColor, settings.DatabaseType, settings.Hostname, settings.Port, ResetColor)
	if err := conn.Connect(); err != nil {
		fmt.Printf("%sError: %v%s\n", ErrorColor, err, ResetColor)
		os.Exit(1)
	}
	defer conn.Disconnect()
	fmt.Printf("%s✓ Connected%s\n", SuccessColor, ResetColor)

	cli := &CLI{
		conn:        conn,
		history:     make([]string, 0),
		historyFile: getHistoryPath(),
	}

	cli.loadHistory()

	// Execute SQL file if provided
	if *sqlFile != "" {
		if err := cli.importFile(*sqlFile); err != nil {
			fmt.Printf("%sError importing file: %v%s\n", ErrorColor, err, ResetColor)
			os.Exit(1)
		}
		return
	}

	cli.run()
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envPortOr(key string, fallback uint) uint {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 16); err == nil {
			return uint(n)
		}
	}
	return fallback
}

func buildSettings(dbType, username, password, hostname string, port uint, database, useTLS string) (*db.Settings, error) {
	settings := db.NewSettings()
	switch strings.ToLower(dbType) {
	case "mysql":
		settings.DatabaseType = types.MySQL
		settings.Port = 3306
	case "postgres", "postgresql", "pg":
		settings.DatabaseType = types.Postgres
		settings.Port = 5432
	case "duckdb":
		settings.DatabaseType = types.DuckDB
	default:
		return nil, fmt.Errorf("unknown database type %q", dbType)
	}
	settings.Username = username
	settings.Password = password
	settings.Hostname = hostname
	if port != 0 {
		settings.Port = uint16(port)
	}
	settings.DatabaseName = database
	switch strings.ToLower(useTLS) {
	case "":
		settings.UseTLS = types.OptionalNone
	case "true", "1", "yes":
		settings.UseTLS = types.OptionalTrue
	case "false", "0", "no":
		settings.UseTLS = types.OptionalFalse
	default:
		return nil, fmt.Errorf("unknown tls setting %q", useTLS)
	}
	return settings, nil
}

func printBanner() {
	fmt.Println()
	bannerWidth := 39 // inner width of the banner box
	versionLine := fmt.Sprintf("sqlgate v%s", Version)
	padding := bannerWidth - len(versionLine) - 2 // -2 for "  " margins
	if padding < 0 {
		padding = 0
	}
	leftPad := padding / 2
	rightPad := padding - leftPad

	fmt.Printf("%s%s╔═══════════════════════════════════════╗%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s║ %*s%s%*s ║%s\n", BoldColor, PromptColor, leftPad, "", versionLine, rightPad, "", ResetColor)
	fmt.Printf("%s%s║   Cross-database SQL Client Engine    ║%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Printf("%s%s╚═══════════════════════════════════════╝%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println()
	fmt.Println("Type .help for commands, .quit to exit")
	fmt.Println()
}

func (cli *CLI) run() {
	reader := bufio.NewReader(os.Stdin)
	var multiLineBuffer strings.Builder

	for {
		prompt := cli.getPrompt(multiLineBuffer.Len() > 0)
		fmt.Print(prompt)

		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Printf("\n%sGoodbye!%s\n", SuccessColor, ResetColor)
			return
		}

		input = strings.TrimSuffix(input, "\n")
		input = strings.TrimSuffix(input, "\r")

		if strings.TrimSpace(input) == "" {
			continue
		}

		// Special commands work only outside a multi-line statement
		if multiLineBuffer.Len() == 0 && strings.HasPrefix(input, ".") {
			if cli.handleCommand(input) {
				continue
			}
		}

		// Multi-line support: accumulate until we see a semicolon
		multiLineBuffer.WriteString(input)

		trimmed := strings.TrimSpace(multiLineBuffer.String())
		if !strings.HasSuffix(trimmed, ";") {
			multiLineBuffer.WriteString(" ")
			continue
		}

		sql := strings.TrimSuffix(trimmed, ";")
		multiLineBuffer.Reset()

		if strings.TrimSpace(sql) == "" {
			continue
		}

		cli.addToHistory(sql + ";")
		cli.execute(sql)
	}
}

// execute dispatches a statement: returning queries render a result
// table, everything else reports the affected row count.
func (cli *CLI) execute(sql string) {
	if isReturning(sql) {
		rows, err := cli.conn.FetchQuery(sql, nil)
		if err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			return
		}
		vector, err := rows.Rest()
		if err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			return
		}
		if err := db.RenderRows(os.Stdout, vector); err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			return
		}
		fmt.Printf("%s✓ %d rows%s\n", SuccessColor, vector.Size(), ResetColor)
		return
	}

	affected, err := cli.conn.ExecuteQuery(sql, nil)
	if err != nil {
		fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		return
	}
	fmt.Printf("%s✓ %d rows affected%s\n", SuccessColor, affected, ResetColor)
}

// isReturning decides whether a statement produces a result set.
func isReturning(sql string) bool {
	head := strings.ToUpper(strings.TrimSpace(sql))
	for _, prefix := range []string{"SELECT", "SHOW", "WITH", "VALUES", "DESCRIBE", "EXPLAIN", "TABLE", "PRAGMA"} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return strings.Contains(head, " RETURNING ")
}

func (cli *CLI) getPrompt(multiLine bool) string {
	if multiLine {
		return fmt.Sprintf("%s   ...>%s ", PromptColor, ResetColor)
	}

	dbPart := ""
	if name := cli.conn.Settings().DatabaseName; name != "" {
		dbPart = fmt.Sprintf(" (%s)", name)
	}

	return fmt.Sprintf("%ssqlgate%s>%s ", PromptColor, dbPart, ResetColor)
}

func (cli *CLI) handleCommand(input string) bool {
	cmd := strings.ToLower(strings.TrimSpace(input))
	parts := strings.Fields(cmd)

	if len(parts) == 0 {
		return true
	}

	switch parts[0] {
	case ".quit", ".exit", ".q":
		fmt.Printf("%sGoodbye!%s\n", SuccessColor, ResetColor)
		cli.saveHistory()
		cli.conn.Disconnect()
		os.Exit(0)

	case ".help", ".h", ".?":
		cli.printHelp()

	case ".status":
		cli.printStatus()

	case ".reconnect":
		if err := cli.conn.Reconnect(); err != nil {
			fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
		} else {
			fmt.Printf("%s✓ Reconnected%s\n", SuccessColor, ResetColor)
		}

	case ".clear", ".cls":
		fmt.Print("\033[H\033[2J")

	case ".history":
		cli.printHistory()

	case ".version":
		fmt.Printf("sqlgate version %s\n", Version)

	case ".import":
		if len(parts) > 1 {
			if err := cli.importFile(parts[1]); err != nil {
				fmt.Printf("%s✗ Error: %v%s\n", ErrorColor, err, ResetColor)
			}
		} else {
			fmt.Printf("%s✗ Usage: .import <file.sql>%s\n", ErrorColor, ResetColor)
		}

	default:
		fmt.Printf("%s✗ Unknown command: %s (type .help for commands)%s\n", ErrorColor, parts[0], ResetColor)
	}

	return true
}

func (cli *CLI) printHelp() {
	fmt.Println()
	fmt.Printf("%s%sSpecial Commands:%s\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("  .help, .h        Show this help message")
	fmt.Println("  .quit, .exit     Exit the CLI")
	fmt.Println("  .status          Show the connection status")
	fmt.Println("  .reconnect       Drop and reopen the connection")
	fmt.Println("  .import <file>   Execute SQL statements from a file")
	fmt.Println("  .history         Show command history")
	fmt.Println("  .clear           Clear the screen")
	fmt.Println("  .version         Show version info")
	fmt.Println()
	fmt.Printf("%s%sSQL:%s statements end with a semicolon and run on the\n", BoldColor, PromptColor, ResetColor)
	fmt.Println("connected server; SELECT and other returning statements")
	fmt.Println("render a result table, the rest report rows affected.")
	fmt.Println()
}

func (cli *CLI) printStatus() {
	s := cli.conn.Settings()
	state := "disconnected"
	if cli.conn.IsConnected() {
		state = "connected"
	}
	fmt.Printf("  state:    %s\n", state)
	fmt.Printf("  dialect:  %s\n", s.DatabaseType)
	if s.DatabaseType == types.DuckDB {
		path := s.DatabaseName
		if path == "" {
			path = "(memory)"
		}
		fmt.Printf("  path:     %s\n", path)
		return
	}
	fmt.Printf("  host:     %s:%d\n", s.Hostname, s.Port)
	fmt.Printf("  database: %s\n", s.DatabaseName)
	fmt.Printf("  user:     %s\n", s.Username)
	fmt.Printf("  tls:      %s\n", s.UseTLS)
}

func (cli *CLI) addToHistory(cmd string) {
	// Don't add duplicates of the last command
	if len(cli.history) > 0 && cli.history[len(cli.history)-1] == cmd {
		return
	}
	cli.history = append(cli.history, cmd)

	if len(cli.history) > 1000 {
		cli.history = cli.history[len(cli.history)-1000:]
	}
}

func (cli *CLI) printHistory() {
	if len(cli.history) == 0 {
		fmt.Println("No command history")
		return
	}

	start := 0
	if len(cli.history) > 20 {
		start = len(cli.history) - 20
	}

	for i := start; i < len(cli.history); i++ {
		fmt.Printf("  %3d  %s\n", i+1, cli.history[i])
	}
}

func getHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlgate_history")
}

func (cli *CLI) loadHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Open(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		cli.history = append(cli.history, scanner.Text())
	}
}

func (cli *CLI) saveHistory() {
	if cli.historyFile == "" {
		return
	}

	file, err := os.Create(cli.historyFile)
	if err != nil {
		return
	}
	defer file.Close()

	// Save last 1000 entries
	start := 0
	if len(cli.history) > 1000 {
		start = len(cli.history) - 1000
	}

	for i := start; i < len(cli.history); i++ {
		_, _ = file.WriteString(cli.history[i] + "\n")
	}
}

// importFile reads and executes SQL statements from a file
func (cli *CLI) importFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	statements := splitStatements(string(data))

	successCount := 0
	errorCount := 0

	for i, stmt := range statements {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}

		if isReturning(stmt) {
			rows, err := cli.conn.FetchQuery(stmt, nil)
			if err != nil {
				fmt.Printf("%s[%d] ✗ %s%s\n", ErrorColor, i+1, truncate(stmt, 50), ResetColor)
				fmt.Printf("      Error: %v\n", err)
				errorCount++
				continue
			}
			vector, err := rows.Rest()
			if err != nil {
				fmt.Printf("%s[%d] ✗ %s%s\n", ErrorColor, i+1, truncate(stmt, 50), ResetColor)
				fmt.Printf("      Error: %v\n", err)
				errorCount++
				continue
			}
			successCount++
			fmt.Printf("%s[%d] ✓ %s (%d rows)%s\n", SuccessColor, i+1, truncate(stmt, 50), vector.Size(), ResetColor)
			continue
		}

		affected, err := cli.conn.ExecuteQuery(stmt, nil)
		if err != nil {
			fmt.Printf("%s[%d] ✗ %s%s\n", ErrorColor, i+1, truncate(stmt, 50), ResetColor)
			fmt.Printf("      Error: %v\n", err)
			errorCount++
			continue
		}
		successCount++
		fmt.Printf("%s[%d] ✓ %s (%d affected)%s\n", SuccessColor, i+1, truncate(stmt, 50), affected, ResetColor)
	}

	fmt.Printf("\n%s✓ Import complete: %d succeeded, %d failed%s\n",
		SuccessColor, successCount, errorCount, ResetColor)

	return nil
}

// splitStatements splits SQL content into individual statements
func splitStatements(content string) []string {
	var statements []string
	var current strings.Builder
	inString := false
	stringChar := byte(0)

	for i := 0; i < len(content); i++ {
		ch := content[i]

		// Handle string literals
		if (ch == '\'' || ch == '"') && (i == 0 || content[i-1] != '\\') {
			if !inString {
				inString = true
				stringChar = ch
			} else if ch == stringChar {
				inString = false
			}
		}

		// Handle comments
		if !inString && ch == '-' && i+1 < len(content) && content[i+1] == '-' {
			for i < len(content) && content[i] != '\n' {
				i++
			}
			continue
		}

		// Statement separator
		if !inString && ch == ';' {
			stmt := strings.TrimSpace(current.String())
			if stmt != "" {
				statements = append(statements, stmt)
			}
			current.Reset()
			continue
		}

		current.WriteByte(ch)
	}

	// Handle last statement without semicolon
	stmt := strings.TrimSpace(current.String())
	if stmt != "" {
		statements = append(statements, stmt)
	}

	return statements
}

// truncate shortens a string to max length with ellipsis
func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
