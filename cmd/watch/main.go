// Command watch is a terminal client for the stock server: it keeps
// the local watchlist and polls quotes for the tracked symbols the way
// the mobile client refreshes its screens.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stockpredict/internal/httpx"
	"stockpredict/internal/kvstore"
	"stockpredict/internal/market"
	"stockpredict/internal/stocks"
	"stockpredict/internal/watchlist"
)

func main() {
	var serverURL string
	var storePath string
	var addSym string
	var removeSym string
	var list bool
	var once bool
	var intervalSec int

	flag.StringVar(&serverURL, "server", getenv("STOCKPREDICT_SERVER", "http://localhost:8080"), "base URL of the stock server")
	flag.StringVar(&storePath, "store", getenv("STORE_PATH", "stockpredict.db"), "path to the local store")
	flag.StringVar(&addSym, "add", "", "add a symbol to the watchlist and exit")
	flag.StringVar(&removeSym, "remove", "", "remove a symbol from the watchlist and exit")
	flag.BoolVar(&list, "list", false, "print the watchlist and exit")
	flag.BoolVar(&once, "once", false, "fetch one snapshot instead of polling")
	flag.IntVar(&intervalSec, "interval", 60, "poll interval in seconds")
	flag.Parse()

	kv, err := kvstore.Open(storePath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer kv.Close()
	wl := watchlist.NewStore(kv)

	httpClient := httpx.New(15 * time.Second)

	switch {
	case addSym != "":
		sym := stocks.NormalizeSymbol(addSym)
		// Resolve the display name through the server so the stored
		// entry matches what the API serves.
		var quote market.Quote
		if err := getJSON(httpClient, serverURL+"/api/stocks/quote/"+sym, &quote); err != nil {
			log.Fatalf("resolve %s: %v", sym, err)
		}
		items, err := wl.Add(market.WatchlistItem{Symbol: sym, Name: quote.Name, AddedAt: time.Now().UnixMilli()})
		if err != nil {
			log.Fatalf("add: %v", err)
		}
		printJSON(items)
	case removeSym != "":
		items, err := wl.Remove(stocks.NormalizeSymbol(removeSym))
		if err != nil {
			log.Fatalf("remove: %v", err)
		}
		printJSON(items)
	case list:
		items, err := wl.List()
		if err != nil {
			log.Fatalf("list: %v", err)
		}
		printJSON(items)
	default:
		poll(httpClient, serverURL, wl, once, time.Duration(intervalSec)*time.Second)
	}
}

func poll(hc *httpx.Client, serverURL string, wl *watchlist.Store, once bool, interval time.Duration) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for {
		items, err := wl.List()
		if err != nil {
			log.Fatalf("list: %v", err)
		}
		if len(items) == 0 {
			log.Fatal("watchlist is empty; add symbols with -add first")
		}
		symbols := make([]string, len(items))
		for i, it := range items {
			symbols[i] = it.Symbol
		}

		var quotes []market.Quote
		if err := getJSON(hc, serverURL+"/api/stocks/quotes/"+strings.Join(symbols, ","), &quotes); err != nil {
			log.Printf("fetch quotes: %v", err)
		} else {
			printJSON(quotes)
		}

		if once {
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func getJSON(hc *httpx.Client, url string, into any) error {
	req, err := http.NewRequest(http.MethodGet, url, http.NoBody)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	res, err := hc.Do(ctx, req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s -> %d", url, res.StatusCode)
	}
	return json.NewDecoder(res.Body).Decode(into)
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
