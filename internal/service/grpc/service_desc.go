package grpcsvc

import (
	"context"

	"google.golang.org/grpc"
)

// ServiceName — полное имя gRPC-сервиса.
const ServiceName = "windowcleaning.v1.BookingService"

const (
	MethodAddCustomer     = "AddCustomer"
	MethodGetCustomer     = "GetCustomer"
	MethodListCustomers   = "ListCustomers"
	MethodFindCustomerID  = "FindCustomerID"
	MethodAddBooking      = "AddBooking"
	MethodGetBooking      = "GetBooking"
	MethodListBookings    = "ListBookings"
	MethodGetTotalWindows = "GetTotalWindows"
	MethodGetTotalCost    = "GetTotalCost"
)

// FullMethod возвращает путь метода вида /windowcleaning.v1.BookingService/AddCustomer.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// BookingServiceServer — серверная часть gRPC API.
type BookingServiceServer interface {
	AddCustomer(context.Context, *AddCustomerRequest) (*CustomerResponse, error)
	GetCustomer(context.Context, *GetCustomerRequest) (*CustomerResponse, error)
	ListCustomers(context.Context, *ListCustomersRequest) (*ListCustomersResponse, error)
	FindCustomerID(context.Context, *FindCustomerIDRequest) (*FindCustomerIDResponse, error)
	AddBooking(context.Context, *AddBookingRequest) (*BookingResponse, error)
	GetBooking(context.Context, *GetBookingRequest) (*BookingResponse, error)
	ListBookings(context.Context, *ListBookingsRequest) (*ListBookingsResponse, error)
	GetTotalWindows(context.Context, *TotalWindowsRequest) (*TotalResponse, error)
	GetTotalCost(context.Context, *TotalCostRequest) (*TotalResponse, error)
}

// BookingServiceDesc описывает сервис для grpc.Server. Сообщения кодируются JSON-кодеком.
var BookingServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*BookingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: MethodAddCustomer, Handler: unaryHandler(MethodAddCustomer, BookingServiceServer.AddCustomer)},
		{MethodName: MethodGetCustomer, Handler: unaryHandler(MethodGetCustomer, BookingServiceServer.GetCustomer)},
		{MethodName: MethodListCustomers, Handler: unaryHandler(MethodListCustomers, BookingServiceServer.ListCustomers)},
		{MethodName: MethodFindCustomerID, Handler: unaryHandler(MethodFindCustomerID, BookingServiceServer.FindCustomerID)},
		{MethodName: MethodAddBooking, Handler: unaryHandler(MethodAddBooking, BookingServiceServer.AddBooking)},
		{MethodName: MethodGetBooking, Handler: unaryHandler(MethodGetBooking, BookingServiceServer.GetBooking)},
		{MethodName: MethodListBookings, Handler: unaryHandler(MethodListBookings, BookingServiceServer.ListBookings)},
		{MethodName: MethodGetTotalWindows, Handler: unaryHandler(MethodGetTotalWindows, BookingServiceServer.GetTotalWindows)},
		{MethodName: MethodGetTotalCost, Handler: unaryHandler(MethodGetTotalCost, BookingServiceServer.GetTotalCost)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "windowcleaning/v1/booking_service",
}

// RegisterBookingServiceServer регистрирует реализацию на gRPC-сервере.
func RegisterBookingServiceServer(registrar grpc.ServiceRegistrar, srv BookingServiceServer) {
	registrar.RegisterService(&BookingServiceDesc, srv)
}

func unaryHandler[Req, Resp any](
	method string,
	call func(BookingServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		server := srv.(BookingServiceServer)
		if interceptor == nil {
			return call(server, ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(server, ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// BookingServiceClient — клиент gRPC API. Все вызовы идут с content-subtype json.
type BookingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBookingServiceClient создаёт клиента поверх соединения.
func NewBookingServiceClient(cc grpc.ClientConnInterface) *BookingServiceClient {
	return &BookingServiceClient{cc: cc}
}

func (c *BookingServiceClient) AddCustomer(ctx context.Context, in *AddCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error) {
	return invoke[CustomerResponse](ctx, c.cc, MethodAddCustomer, in, opts)
}

func (c *BookingServiceClient) GetCustomer(ctx context.Context, in *GetCustomerRequest, opts ...grpc.CallOption) (*CustomerResponse, error) {
	return invoke[CustomerResponse](ctx, c.cc, MethodGetCustomer, in, opts)
}

func (c *BookingServiceClient) ListCustomers(ctx context.Context, in *ListCustomersRequest, opts ...grpc.CallOption) (*ListCustomersResponse, error) {
	return invoke[ListCustomersResponse](ctx, c.cc, MethodListCustomers, in, opts)
}

func (c *BookingServiceClient) FindCustomerID(ctx context.Context, in *FindCustomerIDRequest, opts ...grpc.CallOption) (*FindCustomerIDResponse, error) {
	return invoke[FindCustomerIDResponse](ctx, c.cc, MethodFindCustomerID, in, opts)
}

func (c *BookingServiceClient) AddBooking(ctx context.Context, in *AddBookingRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, MethodAddBooking, in, opts)
}

func (c *BookingServiceClient) GetBooking(ctx context.Context, in *GetBookingRequest, opts ...grpc.CallOption) (*BookingResponse, error) {
	return invoke[BookingResponse](ctx, c.cc, MethodGetBooking, in, opts)
}

func (c *BookingServiceClient) ListBookings(ctx context.Context, in *ListBookingsRequest, opts ...grpc.CallOption) (*ListBookingsResponse, error) {
	return invoke[ListBookingsResponse](ctx, c.cc, MethodListBookings, in, opts)
}

func (c *BookingServiceClient) GetTotalWindows(ctx context.Context, in *TotalWindowsRequest, opts ...grpc.CallOption) (*TotalResponse, error) {
	return invoke[TotalResponse](ctx, c.cc, MethodGetTotalWindows, in, opts)
}

func (c *BookingServiceClient) GetTotalCost(ctx context.Context, in *TotalCostRequest, opts ...grpc.CallOption) (*TotalResponse, error) {
	return invoke[TotalResponse](ctx, c.cc, MethodGetTotalCost, in, opts)
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	callOpts := append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, callOpts...); err != nil {
		return nil, err
	}
	return out, nil
}
