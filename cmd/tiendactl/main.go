// cmd/tiendactl/main.go — Cliente de terminal contra la API de ParaTodos.
// Uso: tiendactl [-api URL] <comando> [argumentos]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Guntherdrb/paratodos-gemini/internal/client"
	"github.com/Guntherdrb/paratodos-gemini/internal/contacto"
	"github.com/Guntherdrb/paratodos-gemini/internal/vista"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const usoGeneral = `tiendactl [-api URL] <comando> [argumentos]

Comandos:
  tiendas                      lista las tiendas del marketplace
  tienda <slug>                muestra la tienda y su grilla de productos
  producto <id>                muestra el detalle de un producto
  productos <slug>             lista los productos de una tienda
  dashboard <slug>             muestra los contadores del panel
  comprar <slug> <producto>    registra el lead y muestra el enlace de WhatsApp
  comprar-detalle <producto>   como comprar, pero desde el detalle del producto
  crear                        crea una tienda (ver tiendactl crear -h)
`

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)

	apiURL := flag.String("api", envOr("PARATODOS_API", "http://localhost:5000"), "URL base de la API")
	verbose := flag.Bool("v", false, "logs detallados")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usoGeneral) }
	flag.Parse()

	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	api := client.New(*apiURL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	switch cmd := flag.Arg(0); cmd {
	case "tiendas":
		err = cmdTiendas(ctx, api)
	case "tienda":
		err = cmdTienda(ctx, api, requireArg(1, "slug"))
	case "producto":
		err = cmdProducto(ctx, api, requireArg(1, "id"))
	case "productos":
		err = cmdProductos(ctx, api, requireArg(1, "slug"))
	case "dashboard":
		err = cmdDashboard(ctx, api, requireArg(1, "slug"))
	case "comprar":
		err = cmdComprar(ctx, api, requireArg(1, "slug"), requireArg(2, "producto"))
	case "comprar-detalle":
		err = cmdComprarDetalle(ctx, api, requireArg(1, "producto"))
	case "crear":
		err = cmdCrear(ctx, api, flag.Args()[1:])
	default:
		fmt.Fprintf(os.Stderr, "comando desconocido: %s\n\n%s", cmd, usoGeneral)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireArg(n int, nombre string) string {
	if flag.NArg() <= n {
		fmt.Fprintf(os.Stderr, "falta el argumento <%s>\n\n%s", nombre, usoGeneral)
		os.Exit(2)
	}
	return flag.Arg(n)
}

func cmdTiendas(ctx context.Context, api *client.Client) error {
	m := vista.NewMarketplace(api)
	m.Cargar(ctx)

	estado := m.Estado()
	if estado.Fase == vista.FaseFallido {
		return fmt.Errorf("%s", estado.Mensaje)
	}
	if len(estado.Datos) == 0 {
		fmt.Println("No hay tiendas publicadas todavía.")
		return nil
	}
	for _, t := range estado.Datos {
		fmt.Printf("%-24s %s\n", t.Slug, t.Nombre)
	}
	return nil
}

func cmdTienda(ctx context.Context, api *client.Client, slug string) error {
	v := vista.NewVistaTienda(api, slug)
	v.Cargar(ctx)

	estado := v.Estado()
	if estado.Fase == vista.FaseFallido {
		return fmt.Errorf("%s", estado.Mensaje)
	}
	t := estado.Datos.Tienda
	fmt.Println(t.Nombre)
	if t.Descripcion != nil && *t.Descripcion != "" {
		fmt.Println(*t.Descripcion)
	}
	if t.Telefono != nil && *t.Telefono != "" {
		fmt.Println("WhatsApp:", *t.Telefono)
	}
	if len(estado.Datos.Productos) == 0 {
		fmt.Println("\nEsta tienda aún no tiene productos.")
		return nil
	}
	fmt.Println()
	for _, p := range estado.Datos.Productos {
		fmt.Printf("%s  %-32s %s\n", p.ID, p.Nombre, precioOMensaje(p.Precio))
	}
	return nil
}

func cmdProducto(ctx context.Context, api *client.Client, id string) error {
	v := vista.NewVistaProducto(api, id)
	v.Cargar(ctx)

	estado := v.Estado()
	if estado.Fase == vista.FaseFallido {
		return fmt.Errorf("%s", estado.Mensaje)
	}
	p := estado.Datos
	fmt.Println(p.Nombre)
	if p.Descripcion != nil && *p.Descripcion != "" {
		fmt.Println(*p.Descripcion)
	}
	fmt.Println("Precio:", precioOMensaje(p.Precio))
	fmt.Println("Tienda:", p.Tienda.Nombre)
	return nil
}

func cmdProductos(ctx context.Context, api *client.Client, slug string) error {
	v := vista.NewProductosTienda(api, slug)
	v.Cargar(ctx)

	estado := v.Estado()
	if estado.Fase == vista.FaseFallido {
		return fmt.Errorf("%s", estado.Mensaje)
	}
	if len(estado.Datos) == 0 {
		fmt.Println("Esta tienda aún no tiene productos.")
		return nil
	}
	for _, p := range estado.Datos {
		fmt.Printf("%s  %-32s %s\n", p.ID, p.Nombre, precioOMensaje(p.Precio))
	}
	return nil
}

func cmdDashboard(ctx context.Context, api *client.Client, slug string) error {
	d := vista.NewDashboard(api, slug)
	d.Cargar(ctx)

	if t := d.Tienda(); t.Fase == vista.FaseListo {
		fmt.Println("Tienda:   ", t.Datos.Nombre)
	} else {
		fmt.Println("Tienda:   ", t.Mensaje)
	}
	if l := d.Leads(); l.Fase == vista.FaseListo {
		fmt.Println("Leads:    ", l.Datos)
	} else {
		fmt.Println("Leads:    ", l.Mensaje)
	}
	if p := d.Productos(); p.Fase == vista.FaseListo {
		fmt.Println("Productos:", p.Datos)
	} else {
		fmt.Println("Productos:", p.Mensaje)
	}
	return nil
}

// abridorConsola stands in for window.open: it prints the link for the user
// to follow.
func abridorConsola() contacto.Abridor {
	return contacto.AbridorFunc(func(url string) error {
		fmt.Println("Abre este enlace para contactar a la tienda:")
		fmt.Println(" ", url)
		return nil
	})
}

func imprimirResultado(r contacto.Resultado) {
	if r.Aviso != "" {
		fmt.Println(r.Aviso)
	}
	if r.LeadRegistrado {
		fmt.Println("Tu interés quedó registrado.")
	}
}

func cmdComprar(ctx context.Context, api *client.Client, slug, productoID string) error {
	v := vista.NewVistaTienda(api, slug)
	v.Cargar(ctx)
	if estado := v.Estado(); estado.Fase == vista.FaseFallido {
		return fmt.Errorf("%s", estado.Mensaje)
	}
	d := contacto.NewDispatcher(api, abridorConsola())
	imprimirResultado(v.Comprar(ctx, d, productoID))
	return nil
}

func cmdComprarDetalle(ctx context.Context, api *client.Client, productoID string) error {
	v := vista.NewVistaProducto(api, productoID)
	v.Cargar(ctx)
	if estado := v.Estado(); estado.Fase == vista.FaseFallido {
		return fmt.Errorf("%s", estado.Mensaje)
	}
	d := contacto.NewDispatcher(api, abridorConsola())
	imprimirResultado(v.Comprar(ctx, d))
	return nil
}

func cmdCrear(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("crear", flag.ExitOnError)
	nombre := fs.String("nombre", "", "nombre de la tienda (mínimo 3 caracteres)")
	descripcion := fs.String("descripcion", "", "descripción de la tienda")
	logo := fs.String("logo", "", "ruta del logo")
	catalogo := fs.String("catalogo", "", "ruta del catálogo en PDF")
	if err := fs.Parse(args); err != nil {
		return err
	}

	form := &client.FormularioTienda{Nombre: *nombre, Descripcion: *descripcion}
	var err error
	if form.Logo, err = leerArchivo(*logo); err != nil {
		return err
	}
	if form.Catalogo, err = leerArchivo(*catalogo); err != nil {
		return err
	}

	destino, err := api.CrearTienda(ctx, form)
	if err != nil {
		return err
	}
	fmt.Println("Tienda creada:", destino)
	fmt.Println("El catálogo se está procesando; los productos aparecerán en unos minutos.")
	return nil
}

func leerArchivo(ruta string) (client.Archivo, error) {
	if ruta == "" {
		return client.Archivo{}, nil
	}
	contenido, err := os.ReadFile(ruta)
	if err != nil {
		return client.Archivo{}, fmt.Errorf("no se pudo leer %s: %w", ruta, err)
	}
	return client.Archivo{Nombre: filepath.Base(ruta), Contenido: contenido}, nil
}

func precioOMensaje(precio string) string {
	if precio == "" {
		return "Precio no disponible"
	}
	return precio
}
