// Command chat_client is a minimal interactive NP-Chat client for
// manual testing. It registers a nickname and then forwards raw
// protocol lines from stdin, printing every server line verbatim.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		log.Printf("chat_client: %v", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "localhost:5005", "server address")
	nick := flag.String("nick", "cli-user", "nickname to register")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := net.Dial("tcp", *addr)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	if _, err := fmt.Fprintf(conn, "0|NICK|%s\n", *nick); err != nil {
		return fmt.Errorf("register nick: %w", err)
	}

	go func() {
		sc := bufio.NewScanner(conn)
		for sc.Scan() {
			fmt.Println(sc.Text())
		}
		stop()
	}()

	fmt.Printf("Connected to %s as %s\n", *addr, *nick)
	fmt.Println("Type protocol lines (e.g. 0|CREATE_ROOM|lobby) and press Enter. Ctrl+C to exit.")

	stdin := bufio.NewScanner(os.Stdin)
	for stdin.Scan() {
		if ctx.Err() != nil {
			break
		}
		if _, err := fmt.Fprintln(conn, stdin.Text()); err != nil {
			return fmt.Errorf("send: %w", err)
		}
	}
	return nil
}
